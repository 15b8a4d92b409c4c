package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/polkiloo/cvorders/internal/adapter/gateway"
	"github.com/polkiloo/cvorders/internal/domain/model"
	testhelpers "github.com/polkiloo/cvorders/internal/test"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func openPayment(id string) model.Payment {
	return model.Payment{ID: id, InvoiceID: "INV-" + id, State: model.PaymentStatePending}
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.After(timeout)
	for !cond() {
		select {
		case <-deadline:
			t.Fatal("timeout waiting for condition")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestNewPaymentReconcilerDefaults(t *testing.T) {
	proc := NewPaymentReconciler(&testhelpers.WorkerFacadeStub{}, time.Second, 0, 0, discardLogger())
	if proc.batchSize != 1 {
		t.Fatalf("expected batch size default to 1, got %d", proc.batchSize)
	}
	if proc.workers != 1 {
		t.Fatalf("expected workers default to 1, got %d", proc.workers)
	}
}

func TestPaymentReconcilerAppliesGatewayState(t *testing.T) {
	facade := &testhelpers.WorkerFacadeStub{Batches: [][]model.Payment{{openPayment("p-1")}}}
	proc := NewPaymentReconciler(facade, 10*time.Millisecond, 1, 1, discardLogger())

	proc.Start(context.Background())
	waitFor(t, 500*time.Millisecond, func() bool {
		facade.Lock()
		defer facade.Unlock()
		return len(facade.Applied) > 0
	})
	proc.Stop()

	facade.Lock()
	defer facade.Unlock()
	if facade.Applied[0].PaymentID != "p-1" || facade.Applied[0].State != model.PaymentStateComplete {
		t.Fatalf("unexpected applied state %+v", facade.Applied[0])
	}
}

func TestPaymentReconcilerSkipsUnchangedState(t *testing.T) {
	facade := &testhelpers.WorkerFacadeStub{
		Batches: [][]model.Payment{{openPayment("p-1")}},
		CheckFn: func(_ context.Context, invoiceID string) (*model.PaymentStatus, error) {
			return &model.PaymentStatus{InvoiceID: invoiceID, State: model.PaymentStatePending}, nil
		},
	}
	proc := NewPaymentReconciler(facade, 5*time.Millisecond, 1, 1, discardLogger())

	proc.Start(context.Background())
	waitFor(t, 500*time.Millisecond, func() bool { return facade.Checks() > 0 })
	proc.Stop()

	facade.Lock()
	defer facade.Unlock()
	if len(facade.Applied) != 0 {
		t.Fatalf("expected no state change, got %+v", facade.Applied)
	}
}

func TestPaymentReconcilerHandlesRateLimiting(t *testing.T) {
	attempts := int32(0)
	facade := &testhelpers.WorkerFacadeStub{
		Batches: [][]model.Payment{{openPayment("p-1")}, {openPayment("p-1")}},
		CheckFn: func(_ context.Context, invoiceID string) (*model.PaymentStatus, error) {
			if atomic.AddInt32(&attempts, 1) == 1 {
				return nil, gateway.TooManyRequestsError{RetryAfter: 10 * time.Millisecond}
			}
			return &model.PaymentStatus{InvoiceID: invoiceID, State: model.PaymentStateFailed}, nil
		},
	}

	proc := NewPaymentReconciler(facade, 5*time.Millisecond, 1, 1, discardLogger())
	proc.Start(context.Background())
	waitFor(t, time.Second, func() bool {
		facade.Lock()
		defer facade.Unlock()
		return len(facade.Applied) > 0
	})
	proc.Stop()

	if atomic.LoadInt32(&attempts) < 2 {
		t.Fatalf("expected retry after rate limit, got %d attempts", atomic.LoadInt32(&attempts))
	}
}

func TestPaymentReconcilerToleratesFailures(t *testing.T) {
	facade := &testhelpers.WorkerFacadeStub{
		PaymentsFn: func(context.Context, int) ([]model.Payment, error) {
			return []model.Payment{openPayment("p-1"), openPayment("p-2")}, nil
		},
		CheckFn: func(_ context.Context, invoiceID string) (*model.PaymentStatus, error) {
			if invoiceID == "INV-p-1" {
				return nil, gateway.ErrPaymentNotFound
			}
			return &model.PaymentStatus{InvoiceID: invoiceID, State: model.PaymentStateComplete}, nil
		},
		ApplyFn: func(context.Context, string, model.PaymentState) error {
			return errors.New("db down")
		},
	}

	proc := NewPaymentReconciler(facade, 5*time.Millisecond, 2, 2, discardLogger())
	proc.Start(context.Background())
	waitFor(t, time.Second, func() bool { return facade.Checks() >= 4 })
	proc.Stop()
}

func TestPaymentReconcilerFetchError(t *testing.T) {
	calls := int32(0)
	facade := &testhelpers.WorkerFacadeStub{
		PaymentsFn: func(context.Context, int) ([]model.Payment, error) {
			atomic.AddInt32(&calls, 1)
			return nil, errors.New("query failed")
		},
	}
	proc := NewPaymentReconciler(facade, 5*time.Millisecond, 1, 1, discardLogger())
	proc.Start(context.Background())
	waitFor(t, time.Second, func() bool { return atomic.LoadInt32(&calls) >= 2 })
	proc.Stop()

	if facade.Checks() != 0 {
		t.Fatal("no checks expected when fetching fails")
	}
}

func TestSleepHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	sleep(ctx, time.Minute)
	if time.Since(start) > time.Second {
		t.Fatal("sleep must return when context is done")
	}
	sleep(context.Background(), 0)
}
