package repository

import (
	"context"

	"github.com/polkiloo/cvorders/internal/domain/model"
)

// SessionRepository stores the active order per user.
type SessionRepository interface {
	ActiveOrder(ctx context.Context, userID int64) (string, error)
	SetActiveOrder(ctx context.Context, userID int64, orderID string) error
	ClearActiveOrder(ctx context.Context, userID int64) error
}

// WizardRepository persists wizard positions.
type WizardRepository interface {
	Get(ctx context.Context, userID int64, orderID string) (*model.WizardState, error)
	Save(ctx context.Context, state model.WizardState) error
}
