package repository

import (
	"context"

	"github.com/polkiloo/cvorders/internal/domain/model"
)

// ProfileRepository manages user profile sub-entities.
// Update and Delete return ErrNotFound when the item does not belong to the user.
type ProfileRepository interface {
	ListWorkHistory(ctx context.Context, userID int64) ([]model.WorkHistory, error)
	AddWorkHistory(ctx context.Context, item *model.WorkHistory) error
	UpdateWorkHistory(ctx context.Context, item *model.WorkHistory) error
	DeleteWorkHistory(ctx context.Context, userID int64, id string) error

	ListEducation(ctx context.Context, userID int64) ([]model.Education, error)
	AddEducation(ctx context.Context, item *model.Education) error
	UpdateEducation(ctx context.Context, item *model.Education) error
	DeleteEducation(ctx context.Context, userID int64, id string) error

	ListSkills(ctx context.Context, userID int64) ([]model.Skill, error)
	AddSkill(ctx context.Context, item *model.Skill) error
	UpdateSkill(ctx context.Context, item *model.Skill) error
	DeleteSkill(ctx context.Context, userID int64, id string) error

	GetSummary(ctx context.Context, userID int64) (*model.ProfessionalSummary, error)
	UpsertSummary(ctx context.Context, summary *model.ProfessionalSummary) error
}
