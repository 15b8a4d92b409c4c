package events

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/polkiloo/cvorders/internal/domain/model"
)

// Type names an order event.
type Type string

const (
	OrderCreated       Type = "order.created"
	OrderStatusChanged Type = "order.status_changed"
	OrderFileUploaded  Type = "order.file_uploaded"
	OrderDeleted       Type = "order.deleted"
	PaymentCompleted   Type = "payment.completed"
	PaymentFailed      Type = "payment.failed"
)

// Event is published whenever an order changes.
type Event struct {
	Type       Type              `json:"type"`
	OrderID    string            `json:"orderId"`
	UserID     int64             `json:"userId"`
	Status     model.OrderStatus `json:"status,omitempty"`
	Actor      model.Actor       `json:"actor,omitempty"`
	OccurredAt time.Time         `json:"occurredAt"`
}

// Publisher delivers events to a sink.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop discards events.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(context.Context, Event) error { return nil }

// Multi fans an event out to every sink concurrently.
type Multi struct {
	sinks []Publisher
}

// NewMulti constructs Multi.
func NewMulti(sinks ...Publisher) *Multi {
	return &Multi{sinks: sinks}
}

// Publish sends e to all sinks and joins their errors.
func (m *Multi) Publish(ctx context.Context, e Event) error {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}

	errs := make([]error, len(m.sinks))
	var g errgroup.Group
	for i, sink := range m.sinks {
		i, sink := i, sink
		g.Go(func() error {
			errs[i] = sink.Publish(ctx, e)
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}
