package repository

import (
	"context"

	"github.com/polkiloo/cvorders/internal/domain/model"
)

// PaymentRepository persists payment attempts and processed gateway events.
type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	GetByID(ctx context.Context, id string) (*model.Payment, error)
	GetByInvoice(ctx context.Context, invoiceID string) (*model.Payment, error)
	AttachInvoice(ctx context.Context, id, invoiceID, paymentURL string, state model.PaymentState) error
	UpdateState(ctx context.Context, id string, state model.PaymentState) error
	SelectBatchForReconciliation(ctx context.Context, limit int) ([]model.Payment, error)
	// MarkEventProcessed returns false when the event was already processed.
	MarkEventProcessed(ctx context.Context, invoiceID string, state model.PaymentState) (bool, error)
}
