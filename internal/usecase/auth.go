package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/polkiloo/cvorders/internal/domain/errors"
	"github.com/polkiloo/cvorders/internal/domain/model"
	"github.com/polkiloo/cvorders/internal/domain/repository"
	pkgAuth "github.com/polkiloo/cvorders/internal/pkg/auth"
)

// AuthUseCase handles user lifecycle and token management.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
	staff  StaffDirectory
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy, staff StaffDirectory) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy, staff: staff}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user and returns auth token.
func (u *AuthUseCase) Register(ctx context.Context, reg model.Registration) (*model.User, string, error) {
	reg.Email = normalizeEmail(reg.Email)
	reg.FirstName = strings.TrimSpace(reg.FirstName)
	reg.LastName = strings.TrimSpace(reg.LastName)
	if err := ValidateRegistration(reg); err != nil {
		return nil, "", err
	}

	hash, err := u.hasher.Hash(reg.Password)
	if err != nil {
		return nil, "", err
	}

	role := model.RoleUser
	if u.staff != nil && u.staff.IsStaffEmail(reg.Email) {
		role = model.RoleStaff
	}

	usr, err := u.users.Create(ctx, &model.User{
		Email:        reg.Email,
		PasswordHash: hash,
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		Role:         role,
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, "", domainErrors.ErrAlreadyExists
		}
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// Authenticate validates credentials and returns auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ParseToken extracts user ID from provided token.
func (u *AuthUseCase) ParseToken(token string) (int64, error) {
	if token == "" {
		return 0, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// GetByID fetches user by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}

// IsStaff reports whether the user holds the staff role.
func (u *AuthUseCase) IsStaff(ctx context.Context, id int64) (bool, error) {
	usr, err := u.users.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return usr.IsStaff(), nil
}

// UpdateProfile overwrites editable profile fields.
func (u *AuthUseCase) UpdateProfile(ctx context.Context, id int64, upd model.ProfileUpdate) (*model.User, error) {
	if strings.TrimSpace(upd.FirstName) == "" || strings.TrimSpace(upd.LastName) == "" {
		verr := domainErrors.NewValidationError()
		if strings.TrimSpace(upd.FirstName) == "" {
			verr.Add("firstName", "First name is required")
		}
		if strings.TrimSpace(upd.LastName) == "" {
			verr.Add("lastName", "Last name is required")
		}
		return nil, verr
	}

	usr, err := u.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	upd.Apply(usr)
	if err := u.users.Update(ctx, usr); err != nil {
		return nil, err
	}
	return usr, nil
}
