package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/cvorders/internal/domain/model"
	"github.com/polkiloo/cvorders/internal/server/http/dto"
)

// WizardHandler drives step navigation of the active order.
type WizardHandler struct {
	facade WizardFacade
}

func NewWizardHandler(facade WizardFacade) *WizardHandler {
	return &WizardHandler{facade: facade}
}

// Start handles POST /api/wizard.
func (h *WizardHandler) Start(c *gin.Context) {
	var req dto.StartWizardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	v, err := h.facade.StartWizard(c.Request.Context(), CurrentUserID(c), model.Flow(req.Flow))
	if err != nil {
		fail(c, err)
		return
	}
	success(c, "wizard_started", "Wizard started", dto.NewWizardResponse(v))
}

// Get handles GET /api/wizard.
func (h *WizardHandler) Get(c *gin.Context) {
	v, err := h.facade.Wizard(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	success(c, "wizard", "Wizard", dto.NewWizardResponse(v))
}

// Advance handles POST /api/wizard/advance. At the last step the
// response carries submitted=true and the client proceeds to checkout.
func (h *WizardHandler) Advance(c *gin.Context) {
	out, err := h.facade.AdvanceWizard(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	if out.Submitted {
		success(c, "wizard_submitted", "Order submitted", dto.NewWizardOutcomeResponse(out))
		return
	}
	success(c, "wizard_advanced", "Wizard advanced", dto.NewWizardOutcomeResponse(out))
}

// Retreat handles POST /api/wizard/retreat.
func (h *WizardHandler) Retreat(c *gin.Context) {
	v, err := h.facade.RetreatWizard(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	success(c, "wizard_retreated", "Wizard moved back", dto.NewWizardResponse(v))
}

// Jump handles POST /api/wizard/jump.
func (h *WizardHandler) Jump(c *gin.Context) {
	var req dto.JumpRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Index == nil {
		badRequest(c, "Step index is required")
		return
	}
	v, err := h.facade.JumpWizard(c.Request.Context(), CurrentUserID(c), *req.Index)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, "wizard_jumped", "Wizard moved", dto.NewWizardResponse(v))
}
