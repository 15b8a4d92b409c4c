package test

import (
	"context"
	"io"
	"sync"

	"github.com/polkiloo/cvorders/internal/domain/model"
	"github.com/polkiloo/cvorders/internal/events"
)

// FileStoreStub records saved files in memory.
type FileStoreStub struct {
	SaveFn func(context.Context, string, io.Reader) (model.OrderFile, error)
	Saved  map[string][]byte
}

// Save reads r and returns deterministic metadata.
func (s *FileStoreStub) Save(ctx context.Context, name string, r io.Reader) (model.OrderFile, error) {
	if s.SaveFn != nil {
		return s.SaveFn(ctx, name, r)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return model.OrderFile{}, err
	}
	if s.Saved == nil {
		s.Saved = make(map[string][]byte)
	}
	storage := StorageName(name)
	s.Saved[storage] = data
	return model.OrderFile{
		ID:              storage,
		FileStorageName: storage,
		Name:            name,
		URL:             "http://files.local/files/" + storage,
	}, nil
}

// GatewayStub simulates the payment gateway.
type GatewayStub struct {
	CheckoutFn func(context.Context, model.CheckoutRequest) (*model.CheckoutResult, error)
	StatusFn   func(context.Context, string) (*model.PaymentStatus, error)
	Requests   []model.CheckoutRequest
}

// Checkout records the request and returns a pending invoice by default.
func (s *GatewayStub) Checkout(ctx context.Context, req model.CheckoutRequest) (*model.CheckoutResult, error) {
	s.Requests = append(s.Requests, req)
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, req)
	}
	return &model.CheckoutResult{
		InvoiceID:  "INV-" + req.APIRef,
		PaymentURL: "https://pay.local/" + req.APIRef,
		State:      model.PaymentStatePending,
	}, nil
}

// Status returns configured state or pending.
func (s *GatewayStub) Status(ctx context.Context, invoiceID string) (*model.PaymentStatus, error) {
	if s.StatusFn != nil {
		return s.StatusFn(ctx, invoiceID)
	}
	return &model.PaymentStatus{InvoiceID: invoiceID, State: model.PaymentStatePending}, nil
}

// PublisherStub records published events.
type PublisherStub struct {
	Err    error
	mu     sync.Mutex
	events []events.Event
}

// Publish stores the event.
func (p *PublisherStub) Publish(ctx context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.Err
}

// Events returns a snapshot of published events.
func (p *PublisherStub) Events() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Event(nil), p.events...)
}

// Types returns types of published events in order.
func (p *PublisherStub) Types() []events.Type {
	var out []events.Type
	for _, e := range p.Events() {
		out = append(out, e.Type)
	}
	return out
}
