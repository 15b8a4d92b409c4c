package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/cvorders/internal/adapter/gateway"
	"github.com/polkiloo/cvorders/internal/domain/model"
)

// PaymentFacade exposes the subset of application functionality required by the worker.
type PaymentFacade interface {
	PaymentsForReconciliation(ctx context.Context, limit int) ([]model.Payment, error)
	CheckPayment(ctx context.Context, invoiceID string) (*model.PaymentStatus, error)
	ApplyPaymentState(ctx context.Context, paymentID string, state model.PaymentState) error
}

// PaymentReconciler polls the gateway for open payments whose webhook never arrived.
type PaymentReconciler struct {
	facade       PaymentFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Payment
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewPaymentReconciler constructs the reconciliation worker pool.
func NewPaymentReconciler(facade PaymentFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *PaymentReconciler {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &PaymentReconciler{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Payment, batchSize*workers),
	}
}

// Start launches background reconciliation.
func (p *PaymentReconciler) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop cancels polling and waits for in-flight checks.
func (p *PaymentReconciler) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *PaymentReconciler) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchAndDispatch(ctx)
		}
	}
}

func (p *PaymentReconciler) fetchAndDispatch(ctx context.Context) {
	payments, err := p.facade.PaymentsForReconciliation(ctx, p.batchSize)
	if err != nil {
		p.logger.Error("fetch payments for reconciliation failed", slog.String("error", err.Error()))
		return
	}
	for _, payment := range payments {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- payment:
		}
	}
}

func (p *PaymentReconciler) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case payment, ok := <-p.jobs:
			if !ok {
				return
			}
			p.handlePayment(ctx, payment)
		}
	}
}

func (p *PaymentReconciler) handlePayment(ctx context.Context, payment model.Payment) {
	status, err := p.facade.CheckPayment(ctx, payment.InvoiceID)
	if err != nil {
		var limited gateway.TooManyRequestsError
		switch {
		case errors.As(err, &limited):
			p.logger.Warn("gateway rate limited", slog.Duration("retry_after", limited.RetryAfter))
			sleep(ctx, limited.RetryAfter)
		case errors.Is(err, gateway.ErrPaymentNotFound):
			p.logger.Debug("invoice not known to gateway yet", slog.String("invoice", payment.InvoiceID))
		default:
			p.logger.Error("payment status check failed", slog.String("invoice", payment.InvoiceID), slog.String("error", err.Error()))
		}
		return
	}

	if status.State == payment.State {
		return
	}

	if err := p.facade.ApplyPaymentState(ctx, payment.ID, status.State); err != nil {
		p.logger.Error("apply payment state failed",
			slog.String("payment", payment.ID),
			slog.String("state", string(status.State)),
			slog.String("error", err.Error()),
		)
		return
	}
	p.logger.Info("payment reconciled", slog.String("payment", payment.ID), slog.String("state", string(status.State)))
}

func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
