package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/cvorders/internal/server/http/dto"
)

// ProfileHandler serves the user profile and its sections.
type ProfileHandler struct {
	facade ProfileFacade
}

// NewProfileHandler constructs ProfileHandler.
func NewProfileHandler(facade ProfileFacade) *ProfileHandler {
	return &ProfileHandler{facade: facade}
}

// Get handles GET /api/user.
func (h *ProfileHandler) Get(c *gin.Context) {
	user, err := h.facade.Profile(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	success(c, "user", "User", dto.NewUserResponse(user))
}

// Update handles PUT /api/user.
func (h *ProfileHandler) Update(c *gin.Context) {
	var req dto.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	user, err := h.facade.UpdateProfile(c.Request.Context(), CurrentUserID(c), req.Model())
	if err != nil {
		fail(c, err)
		return
	}
	success(c, "user_updated", "User updated", dto.NewUserResponse(user))
}

// UploadAvatar handles POST /api/user/avatar.
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "File is required")
		return
	}
	file, err := header.Open()
	if err != nil {
		badRequest(c, "File is unreadable")
		return
	}
	defer file.Close()

	url, err := h.facade.UploadAvatar(c.Request.Context(), CurrentUserID(c), header.Filename, file)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, "avatar_uploaded", "Avatar uploaded successfully", gin.H{"avatarUrl": url})
}

func (h *ProfileHandler) ListWorkHistory(c *gin.Context) {
	items, err := h.facade.WorkHistory(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	success(c, "work_history", "Work history", dto.Map(items, dto.NewWorkHistory))
}

func (h *ProfileHandler) AddWorkHistory(c *gin.Context) {
	var req dto.WorkHistory
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	item, err := h.facade.AddWorkHistory(c.Request.Context(), CurrentUserID(c), req.Model())
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, "work_history_added", "Work history added", dto.NewWorkHistory(*item))
}

func (h *ProfileHandler) UpdateWorkHistory(c *gin.Context) {
	var req dto.WorkHistory
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	item, err := h.facade.UpdateWorkHistory(c.Request.Context(), CurrentUserID(c), c.Param("id"), req.Model())
	if err != nil {
		fail(c, err)
		return
	}
	success(c, "work_history_updated", "Work history updated", dto.NewWorkHistory(*item))
}

func (h *ProfileHandler) DeleteWorkHistory(c *gin.Context) {
	if err := h.facade.DeleteWorkHistory(c.Request.Context(), CurrentUserID(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	success(c, "work_history_deleted", "Work history deleted", nil)
}

func (h *ProfileHandler) ListEducation(c *gin.Context) {
	items, err := h.facade.Education(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	success(c, "education", "Education", dto.Map(items, dto.NewEducation))
}

func (h *ProfileHandler) AddEducation(c *gin.Context) {
	var req dto.Education
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	item, err := h.facade.AddEducation(c.Request.Context(), CurrentUserID(c), req.Model())
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, "education_added", "Education added", dto.NewEducation(*item))
}

func (h *ProfileHandler) UpdateEducation(c *gin.Context) {
	var req dto.Education
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	item, err := h.facade.UpdateEducation(c.Request.Context(), CurrentUserID(c), c.Param("id"), req.Model())
	if err != nil {
		fail(c, err)
		return
	}
	success(c, "education_updated", "Education updated", dto.NewEducation(*item))
}

func (h *ProfileHandler) DeleteEducation(c *gin.Context) {
	if err := h.facade.DeleteEducation(c.Request.Context(), CurrentUserID(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	success(c, "education_deleted", "Education deleted", nil)
}

func (h *ProfileHandler) ListSkills(c *gin.Context) {
	items, err := h.facade.Skills(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	success(c, "skills", "Skills", dto.Map(items, dto.NewSkill))
}

func (h *ProfileHandler) AddSkill(c *gin.Context) {
	var req dto.Skill
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	item, err := h.facade.AddSkill(c.Request.Context(), CurrentUserID(c), req.Model())
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, "skill_added", "Skills added successfully.", dto.NewSkill(*item))
}

func (h *ProfileHandler) UpdateSkill(c *gin.Context) {
	var req dto.Skill
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	item, err := h.facade.UpdateSkill(c.Request.Context(), CurrentUserID(c), c.Param("id"), req.Model())
	if err != nil {
		fail(c, err)
		return
	}
	success(c, "skill_updated", "Skill updated successfully.", dto.NewSkill(*item))
}

func (h *ProfileHandler) DeleteSkill(c *gin.Context) {
	if err := h.facade.DeleteSkill(c.Request.Context(), CurrentUserID(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	success(c, "skill_deleted", "Skill deleted successfully.", nil)
}

// GetSummary handles GET /api/user/professional-summary.
func (h *ProfileHandler) GetSummary(c *gin.Context) {
	summary, err := h.facade.Summary(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	success(c, "professional_summary", "Professional summary", dto.NewProfessionalSummary(summary))
}

// SaveSummary handles PUT /api/user/professional-summary.
func (h *ProfileHandler) SaveSummary(c *gin.Context) {
	var req dto.ProfessionalSummary
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	summary, err := h.facade.SaveSummary(c.Request.Context(), CurrentUserID(c), req.Model())
	if err != nil {
		fail(c, err)
		return
	}
	success(c, "professional_summary_saved", "Professional summary added successfully.", dto.NewProfessionalSummary(summary))
}
