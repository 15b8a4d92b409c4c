package session

import (
	"context"
	"errors"

	domainErrors "github.com/polkiloo/cvorders/internal/domain/errors"
	"github.com/polkiloo/cvorders/internal/domain/repository"
)

// Accessor resolves the order a user is currently working on.
// Tabs of the same user share one active order; the last Bind wins.
type Accessor struct {
	repo repository.SessionRepository
}

// NewAccessor constructs Accessor.
func NewAccessor(repo repository.SessionRepository) *Accessor {
	return &Accessor{repo: repo}
}

// ActiveOrder returns the bound order id.
func (a *Accessor) ActiveOrder(ctx context.Context, userID int64) (string, error) {
	if userID == 0 {
		return "", domainErrors.ErrNoIdentity
	}
	orderID, err := a.repo.ActiveOrder(ctx, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return "", domainErrors.ErrNoActiveOrder
		}
		return "", err
	}
	if orderID == "" {
		return "", domainErrors.ErrNoActiveOrder
	}
	return orderID, nil
}

// Bind makes orderID the active order of the user.
func (a *Accessor) Bind(ctx context.Context, userID int64, orderID string) error {
	if userID == 0 {
		return domainErrors.ErrNoIdentity
	}
	if orderID == "" {
		return domainErrors.ErrNoActiveOrder
	}
	return a.repo.SetActiveOrder(ctx, userID, orderID)
}

// Clear forgets the active order.
func (a *Accessor) Clear(ctx context.Context, userID int64) error {
	if userID == 0 {
		return domainErrors.ErrNoIdentity
	}
	return a.repo.ClearActiveOrder(ctx, userID)
}
