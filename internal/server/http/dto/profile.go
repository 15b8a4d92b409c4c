package dto

import (
	"time"

	"github.com/polkiloo/cvorders/internal/domain/model"
)

// UserResponse is the public view of a user.
type UserResponse struct {
	ID                int64     `json:"id"`
	Email             string    `json:"email"`
	FirstName         string    `json:"firstName"`
	LastName          string    `json:"lastName"`
	Phone             string    `json:"phone"`
	City              string    `json:"city"`
	Country           string    `json:"country"`
	ProfessionalTitle string    `json:"professionalTitle"`
	AvatarURL         string    `json:"avatarUrl"`
	Role              string    `json:"role"`
	CreatedAt         time.Time `json:"createdAt"`
}

// NewUserResponse maps a user.
func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:                u.ID,
		Email:             u.Email,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		Phone:             u.Phone,
		City:              u.City,
		Country:           u.Country,
		ProfessionalTitle: u.ProfessionalTitle,
		AvatarURL:         u.AvatarURL,
		Role:              string(u.Role),
		CreatedAt:         u.CreatedAt,
	}
}

// ProfileRequest updates editable user fields.
type ProfileRequest struct {
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	Phone             string `json:"phone"`
	City              string `json:"city"`
	Country           string `json:"country"`
	ProfessionalTitle string `json:"professionalTitle"`
}

// Model converts the request.
func (r ProfileRequest) Model() model.ProfileUpdate {
	return model.ProfileUpdate{
		FirstName:         r.FirstName,
		LastName:          r.LastName,
		Phone:             r.Phone,
		City:              r.City,
		Country:           r.Country,
		ProfessionalTitle: r.ProfessionalTitle,
	}
}

type WorkHistory struct {
	ID             string `json:"id"`
	Employer       string `json:"employer"`
	JobTitle       string `json:"jobTitle"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
	WorkingHere    bool   `json:"workingHere"`
	JobDescription string `json:"jobDescription"`
}

func (w WorkHistory) Model() model.WorkHistory {
	return model.WorkHistory{
		ID:             w.ID,
		Employer:       w.Employer,
		JobTitle:       w.JobTitle,
		StartDate:      w.StartDate,
		EndDate:        w.EndDate,
		WorkingHere:    w.WorkingHere,
		JobDescription: w.JobDescription,
	}
}

func NewWorkHistory(m model.WorkHistory) WorkHistory {
	return WorkHistory{
		ID:             m.ID,
		Employer:       m.Employer,
		JobTitle:       m.JobTitle,
		StartDate:      m.StartDate,
		EndDate:        m.EndDate,
		WorkingHere:    m.WorkingHere,
		JobDescription: m.JobDescription,
	}
}

type Education struct {
	ID            string `json:"id"`
	School        string `json:"school"`
	GradeAchieved string `json:"gradeAchieved"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	StudyingHere  bool   `json:"studyingHere"`
	Description   string `json:"description"`
}

func (e Education) Model() model.Education {
	return model.Education{
		ID:            e.ID,
		School:        e.School,
		GradeAchieved: e.GradeAchieved,
		StartDate:     e.StartDate,
		EndDate:       e.EndDate,
		StudyingHere:  e.StudyingHere,
		Description:   e.Description,
	}
}

func NewEducation(m model.Education) Education {
	return Education{
		ID:            m.ID,
		School:        m.School,
		GradeAchieved: m.GradeAchieved,
		StartDate:     m.StartDate,
		EndDate:       m.EndDate,
		StudyingHere:  m.StudyingHere,
		Description:   m.Description,
	}
}

type Skill struct {
	ID     string `json:"id"`
	Skill  string `json:"skill"`
	Rating int    `json:"rating"`
}

func (s Skill) Model() model.Skill {
	return model.Skill{ID: s.ID, Skill: s.Skill, Rating: s.Rating}
}

func NewSkill(m model.Skill) Skill {
	return Skill{ID: m.ID, Skill: m.Skill, Rating: m.Rating}
}

type ProfessionalSummary struct {
	Summary      string    `json:"summary"`
	GitHub       string    `json:"github"`
	LinkedIn     string    `json:"linkedin"`
	OtherWebsite string    `json:"otherWebsite"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (s ProfessionalSummary) Model() model.ProfessionalSummary {
	return model.ProfessionalSummary{Summary: s.Summary, GitHub: s.GitHub, LinkedIn: s.LinkedIn, OtherWebsite: s.OtherWebsite}
}

func NewProfessionalSummary(m *model.ProfessionalSummary) ProfessionalSummary {
	return ProfessionalSummary{
		Summary:      m.Summary,
		GitHub:       m.GitHub,
		LinkedIn:     m.LinkedIn,
		OtherWebsite: m.OtherWebsite,
		UpdatedAt:    m.UpdatedAt,
	}
}

// Map converts a slice with fn.
func Map[T, R any](items []T, fn func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}
