package usecase

import (
	"context"
	"io"
	"log/slog"

	"github.com/polkiloo/cvorders/internal/domain/model"
	"github.com/polkiloo/cvorders/internal/events"
)

// ActiveOrders resolves and binds the order a user is working on.
type ActiveOrders interface {
	ActiveOrder(ctx context.Context, userID int64) (string, error)
	Bind(ctx context.Context, userID int64, orderID string) error
	Clear(ctx context.Context, userID int64) error
}

// FileStore persists uploaded files.
type FileStore interface {
	Save(ctx context.Context, originalName string, r io.Reader) (model.OrderFile, error)
}

// PaymentGateway creates and inspects gateway invoices.
type PaymentGateway interface {
	Checkout(ctx context.Context, req model.CheckoutRequest) (*model.CheckoutResult, error)
	Status(ctx context.Context, invoiceID string) (*model.PaymentStatus, error)
}

// StaffDirectory tells which emails belong to staff accounts.
type StaffDirectory interface {
	IsStaffEmail(email string) bool
}

// publish delivers e and logs failures. Events never fail the caller.
func publish(ctx context.Context, pub events.Publisher, logger *slog.Logger, e events.Event) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, e); err != nil {
		logger.Warn("publish event failed",
			slog.String("type", string(e.Type)),
			slog.String("order", e.OrderID),
			slog.String("error", err.Error()),
		)
	}
}
