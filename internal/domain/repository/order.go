package repository

import (
	"context"

	"github.com/polkiloo/cvorders/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id string) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	ListAll(ctx context.Context, status *model.OrderStatus) ([]model.Order, error)
	Delete(ctx context.Context, id string) error
	UpdateResume(ctx context.Context, id string, file model.OrderFile) error
	UpdateExtras(ctx context.Context, order *model.Order) error
	UpdateTemplate(ctx context.Context, id string, tpl model.Template) error
	AddCompletedFile(ctx context.Context, id string, file model.OrderFile) error
	// UpdateStatus applies a compare-and-set status change and records it in history.
	UpdateStatus(ctx context.Context, update model.StatusUpdate) error
	MarkSubmitted(ctx context.Context, id string) error
	History(ctx context.Context, id string) ([]model.StatusChange, error)
}
