package model

import "time"

type WorkHistory struct {
	ID             string
	UserID         int64
	Employer       string
	JobTitle       string
	StartDate      string
	EndDate        string
	WorkingHere    bool
	JobDescription string
}

type Education struct {
	ID            string
	UserID        int64
	School        string
	GradeAchieved string
	StartDate     string
	EndDate       string
	StudyingHere  bool
	Description   string
}

type Skill struct {
	ID     string
	UserID int64
	Skill  string
	Rating int
}

// ProfessionalSummary is a singleton per user.
type ProfessionalSummary struct {
	UserID       int64
	Summary      string
	GitHub       string
	LinkedIn     string
	OtherWebsite string
	UpdatedAt    time.Time
}
