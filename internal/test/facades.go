package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/polkiloo/cvorders/internal/domain/model"
)

// AppliedState records an ApplyPaymentState invocation.
type AppliedState struct {
	PaymentID string
	State     model.PaymentState
}

// WorkerFacadeStub mimics worker interactions with the application facade.
type WorkerFacadeStub struct {
	Batches    [][]model.Payment
	PaymentsFn func(context.Context, int) ([]model.Payment, error)
	CheckFn    func(context.Context, string) (*model.PaymentStatus, error)
	ApplyFn    func(context.Context, string, model.PaymentState) error
	Applied    []AppliedState
	mu         sync.Mutex
	batchCalls int32
	checkCalls int32
}

// Lock exposes internal mutex for external synchronization.
func (s *WorkerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *WorkerFacadeStub) Unlock() { s.mu.Unlock() }

// Checks returns how many status checks were made.
func (s *WorkerFacadeStub) Checks() int { return int(atomic.LoadInt32(&s.checkCalls)) }

// PaymentsForReconciliation returns batches from configured queue.
func (s *WorkerFacadeStub) PaymentsForReconciliation(ctx context.Context, limit int) ([]model.Payment, error) {
	if s.PaymentsFn != nil {
		return s.PaymentsFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.batchCalls, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// CheckPayment returns configured gateway status, COMPLETE by default.
func (s *WorkerFacadeStub) CheckPayment(ctx context.Context, invoiceID string) (*model.PaymentStatus, error) {
	atomic.AddInt32(&s.checkCalls, 1)
	if s.CheckFn != nil {
		return s.CheckFn(ctx, invoiceID)
	}
	return &model.PaymentStatus{InvoiceID: invoiceID, State: model.PaymentStateComplete}, nil
}

// ApplyPaymentState records state changes.
func (s *WorkerFacadeStub) ApplyPaymentState(ctx context.Context, paymentID string, state model.PaymentState) error {
	if s.ApplyFn != nil {
		return s.ApplyFn(ctx, paymentID, state)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Applied = append(s.Applied, AppliedState{PaymentID: paymentID, State: state})
	return nil
}
