package usecase

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/cvorders/internal/domain/errors"
	"github.com/polkiloo/cvorders/internal/domain/model"
	"github.com/polkiloo/cvorders/internal/domain/repository"
)

// ProfileUseCase manages profile sub-entities and avatar.
type ProfileUseCase struct {
	profiles repository.ProfileRepository
	users    repository.UserRepository
	files    FileStore
}

// NewProfileUseCase constructs ProfileUseCase.
func NewProfileUseCase(profiles repository.ProfileRepository, users repository.UserRepository, files FileStore) *ProfileUseCase {
	return &ProfileUseCase{profiles: profiles, users: users, files: files}
}

// WorkHistory lists work history of the user.
func (u *ProfileUseCase) WorkHistory(ctx context.Context, userID int64) ([]model.WorkHistory, error) {
	return u.profiles.ListWorkHistory(ctx, userID)
}

// AddWorkHistory stores a new entry under a generated id.
func (u *ProfileUseCase) AddWorkHistory(ctx context.Context, userID int64, item model.WorkHistory) (*model.WorkHistory, error) {
	item.ID = uuid.NewString()
	item.UserID = userID
	if err := ValidateWorkHistory(&item); err != nil {
		return nil, err
	}
	if err := u.profiles.AddWorkHistory(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateWorkHistory replaces an entry of the user.
func (u *ProfileUseCase) UpdateWorkHistory(ctx context.Context, userID int64, id string, item model.WorkHistory) (*model.WorkHistory, error) {
	item.ID = id
	item.UserID = userID
	if err := ValidateWorkHistory(&item); err != nil {
		return nil, err
	}
	if err := u.profiles.UpdateWorkHistory(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteWorkHistory removes an entry of the user.
func (u *ProfileUseCase) DeleteWorkHistory(ctx context.Context, userID int64, id string) error {
	return u.profiles.DeleteWorkHistory(ctx, userID, id)
}

// Education lists education entries of the user.
func (u *ProfileUseCase) Education(ctx context.Context, userID int64) ([]model.Education, error) {
	return u.profiles.ListEducation(ctx, userID)
}

// AddEducation stores a new entry under a generated id.
func (u *ProfileUseCase) AddEducation(ctx context.Context, userID int64, item model.Education) (*model.Education, error) {
	item.ID = uuid.NewString()
	item.UserID = userID
	if err := ValidateEducation(&item); err != nil {
		return nil, err
	}
	if err := u.profiles.AddEducation(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateEducation replaces an entry of the user.
func (u *ProfileUseCase) UpdateEducation(ctx context.Context, userID int64, id string, item model.Education) (*model.Education, error) {
	item.ID = id
	item.UserID = userID
	if err := ValidateEducation(&item); err != nil {
		return nil, err
	}
	if err := u.profiles.UpdateEducation(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteEducation removes an entry of the user.
func (u *ProfileUseCase) DeleteEducation(ctx context.Context, userID int64, id string) error {
	return u.profiles.DeleteEducation(ctx, userID, id)
}

// Skills lists skills of the user.
func (u *ProfileUseCase) Skills(ctx context.Context, userID int64) ([]model.Skill, error) {
	return u.profiles.ListSkills(ctx, userID)
}

// AddSkill stores a new skill under a generated id.
func (u *ProfileUseCase) AddSkill(ctx context.Context, userID int64, item model.Skill) (*model.Skill, error) {
	item.ID = uuid.NewString()
	item.UserID = userID
	if err := ValidateSkill(&item); err != nil {
		return nil, err
	}
	if err := u.profiles.AddSkill(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateSkill replaces a skill of the user.
func (u *ProfileUseCase) UpdateSkill(ctx context.Context, userID int64, id string, item model.Skill) (*model.Skill, error) {
	item.ID = id
	item.UserID = userID
	if err := ValidateSkill(&item); err != nil {
		return nil, err
	}
	if err := u.profiles.UpdateSkill(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteSkill removes a skill of the user.
func (u *ProfileUseCase) DeleteSkill(ctx context.Context, userID int64, id string) error {
	return u.profiles.DeleteSkill(ctx, userID, id)
}

// Summary returns the professional summary. A user without one gets an empty summary.
func (u *ProfileUseCase) Summary(ctx context.Context, userID int64) (*model.ProfessionalSummary, error) {
	s, err := u.profiles.GetSummary(ctx, userID)
	if errors.Is(err, domainErrors.ErrNotFound) {
		return &model.ProfessionalSummary{UserID: userID}, nil
	}
	return s, err
}

// SaveSummary creates or replaces the professional summary.
func (u *ProfileUseCase) SaveSummary(ctx context.Context, userID int64, s model.ProfessionalSummary) (*model.ProfessionalSummary, error) {
	s.UserID = userID
	if err := ValidateSummary(&s); err != nil {
		return nil, err
	}
	s.UpdatedAt = time.Now().UTC()
	if err := u.profiles.UpsertSummary(ctx, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// UploadAvatar stores the image and returns its public URL.
func (u *ProfileUseCase) UploadAvatar(ctx context.Context, userID int64, name string, r io.Reader) (string, error) {
	if _, err := u.users.GetByID(ctx, userID); err != nil {
		return "", err
	}
	file, err := u.files.Save(ctx, name, r)
	if err != nil {
		return "", err
	}
	if err := u.users.SetAvatar(ctx, userID, file.URL); err != nil {
		return "", err
	}
	return file.URL, nil
}
