package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/cvorders/internal/domain/errors"
	"github.com/polkiloo/cvorders/internal/domain/model"
	"github.com/polkiloo/cvorders/internal/domain/repository"
	"github.com/polkiloo/cvorders/internal/events"
)

// PaymentSettings configures the payment handshake.
type PaymentSettings struct {
	Currency         string
	WebhookChallenge string
}

// PaymentUseCase runs checkout against the gateway and applies payment outcomes.
// Payments never move the order status; a completed payment stamps submission time.
type PaymentUseCase struct {
	payments repository.PaymentRepository
	orders   repository.OrderRepository
	gateway  PaymentGateway
	events   events.Publisher
	logger   *slog.Logger
	settings PaymentSettings
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(
	payments repository.PaymentRepository,
	orders repository.OrderRepository,
	gateway PaymentGateway,
	publisher events.Publisher,
	logger *slog.Logger,
	settings PaymentSettings,
) *PaymentUseCase {
	return &PaymentUseCase{
		payments: payments,
		orders:   orders,
		gateway:  gateway,
		events:   publisher,
		logger:   logger,
		settings: settings,
	}
}

// InitiateMobileMoney requests an STK push for the order total and records
// the payment once the gateway accepted it. The amount is taken from the
// order's package; a client supplied amount must match it.
func (u *PaymentUseCase) InitiateMobileMoney(ctx context.Context, userID int64, orderID string, req model.MobileMoneyRequest) (*model.PaymentOutcome, error) {
	order, err := u.ownedOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	due := amountDue(order)
	if err := validateMobileMoney(req, due); err != nil {
		return nil, err
	}
	req.Amount = due

	paymentID := uuid.NewString()
	res, err := u.gateway.Checkout(ctx, model.CheckoutRequest{
		MobileMoneyRequest: req,
		APIRef:             paymentID,
		Currency:           u.settings.Currency,
	})
	if err != nil {
		return nil, err
	}
	if res.State != model.PaymentStateComplete && res.PaymentURL == "" {
		return nil, fmt.Errorf("%w: no payment url in checkout response", domainErrors.ErrGateway)
	}

	now := time.Now().UTC()
	payment := &model.Payment{
		ID:         paymentID,
		OrderID:    order.ID,
		UserID:     userID,
		Method:     model.PaymentMethodMpesa,
		InvoiceID:  res.InvoiceID,
		Amount:     due,
		Currency:   u.settings.Currency,
		Phone:      strings.TrimSpace(req.PhoneNumber),
		State:      model.PaymentStatePending,
		PaymentURL: res.PaymentURL,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := u.payments.Create(ctx, payment); err != nil {
		return nil, err
	}

	if res.State.Final() || res.State == model.PaymentStateProcessing {
		if payment, err = u.apply(ctx, payment, res.State); err != nil {
			return nil, err
		}
	}

	return &model.PaymentOutcome{
		Payment:    payment,
		PaymentURL: res.PaymentURL,
		Completed:  payment.State == model.PaymentStateComplete,
	}, nil
}

// RecordWidgetEvent applies a callback of the inline checkout widget.
func (u *PaymentUseCase) RecordWidgetEvent(ctx context.Context, userID int64, orderID, event, invoiceID string) (*model.PaymentOutcome, error) {
	order, err := u.ownedOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	state, err := model.ParsePaymentState(strings.ToUpper(strings.TrimSpace(event)))
	if err != nil {
		return nil, domainErrors.NewValidationError(domainErrors.FieldError{Field: "event", Message: "Unknown payment event"})
	}
	invoiceID = strings.TrimSpace(invoiceID)
	if invoiceID == "" {
		return nil, domainErrors.NewValidationError(domainErrors.FieldError{Field: "invoiceId", Message: "Invoice id is required"})
	}

	payment, err := u.payments.GetByInvoice(ctx, invoiceID)
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		payment, err = u.createWidgetPayment(ctx, order, invoiceID)
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	case payment.OrderID != order.ID:
		return nil, domainErrors.ErrPaymentNotAllowed
	}

	fresh, err := u.payments.MarkEventProcessed(ctx, invoiceID, state)
	if err != nil {
		return nil, err
	}
	if fresh {
		if payment, err = u.apply(ctx, payment, state); err != nil {
			return nil, err
		}
	}
	return &model.PaymentOutcome{Payment: payment, Completed: payment.State == model.PaymentStateComplete}, nil
}

// HandleWebhook applies a gateway notification. Repeated deliveries are ignored.
func (u *PaymentUseCase) HandleWebhook(ctx context.Context, evt model.WebhookEvent) error {
	if u.settings.WebhookChallenge == "" ||
		subtle.ConstantTimeCompare([]byte(evt.Challenge), []byte(u.settings.WebhookChallenge)) != 1 {
		return domainErrors.ErrInvalidWebhook
	}
	state, err := model.ParsePaymentState(strings.ToUpper(strings.TrimSpace(evt.State)))
	if err != nil || evt.InvoiceID == "" {
		return domainErrors.ErrInvalidWebhook
	}

	payment, err := u.payments.GetByInvoice(ctx, evt.InvoiceID)
	if errors.Is(err, domainErrors.ErrNotFound) && evt.APIRef != "" {
		payment, err = u.payments.GetByID(ctx, evt.APIRef)
		if err == nil && payment.InvoiceID == "" {
			if err = u.payments.AttachInvoice(ctx, payment.ID, evt.InvoiceID, payment.PaymentURL, payment.State); err == nil {
				payment.InvoiceID = evt.InvoiceID
			}
		}
	}
	if err != nil {
		return err
	}

	fresh, err := u.payments.MarkEventProcessed(ctx, evt.InvoiceID, state)
	if err != nil {
		return err
	}
	if !fresh {
		u.logger.Debug("duplicate webhook ignored", slog.String("invoice", evt.InvoiceID), slog.String("state", string(state)))
		return nil
	}
	_, err = u.apply(ctx, payment, state)
	return err
}

// PaymentsForReconciliation returns non-final payments with an invoice.
func (u *PaymentUseCase) PaymentsForReconciliation(ctx context.Context, limit int) ([]model.Payment, error) {
	return u.payments.SelectBatchForReconciliation(ctx, limit)
}

// CheckPayment asks the gateway about an invoice.
func (u *PaymentUseCase) CheckPayment(ctx context.Context, invoiceID string) (*model.PaymentStatus, error) {
	return u.gateway.Status(ctx, invoiceID)
}

// ApplyState records a polled state of the payment.
func (u *PaymentUseCase) ApplyState(ctx context.Context, paymentID string, state model.PaymentState) error {
	payment, err := u.payments.GetByID(ctx, paymentID)
	if err != nil {
		return err
	}
	_, err = u.apply(ctx, payment, state)
	return err
}

// apply moves a payment to state. Final states are sticky.
func (u *PaymentUseCase) apply(ctx context.Context, payment *model.Payment, state model.PaymentState) (*model.Payment, error) {
	if payment.State == state || payment.State.Final() {
		return payment, nil
	}
	if err := u.payments.UpdateState(ctx, payment.ID, state); err != nil {
		return nil, err
	}
	payment.State = state
	payment.UpdatedAt = time.Now().UTC()

	switch state {
	case model.PaymentStateComplete:
		if err := u.orders.MarkSubmitted(ctx, payment.OrderID); err != nil {
			return nil, err
		}
		u.emit(ctx, events.PaymentCompleted, payment)
		u.logger.Info("payment completed", slog.String("payment", payment.ID), slog.String("order", payment.OrderID))
	case model.PaymentStateFailed:
		u.emit(ctx, events.PaymentFailed, payment)
		u.logger.Info("payment failed", slog.String("payment", payment.ID), slog.String("order", payment.OrderID))
	}
	return payment, nil
}

func (u *PaymentUseCase) createWidgetPayment(ctx context.Context, order *model.Order, invoiceID string) (*model.Payment, error) {
	now := time.Now().UTC()
	payment := &model.Payment{
		ID:        uuid.NewString(),
		OrderID:   order.ID,
		UserID:    order.UserID,
		Method:    model.PaymentMethodWidget,
		InvoiceID: invoiceID,
		Amount:    amountDue(order),
		Currency:  u.settings.Currency,
		State:     model.PaymentStatePending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.payments.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (u *PaymentUseCase) ownedOrder(ctx context.Context, userID int64, orderID string) (*model.Order, error) {
	if userID == 0 {
		return nil, domainErrors.ErrNoIdentity
	}
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domainErrors.ErrForbidden
	}
	return order, nil
}

func (u *PaymentUseCase) emit(ctx context.Context, t events.Type, p *model.Payment) {
	order, err := u.orders.GetByID(ctx, p.OrderID)
	e := events.Event{Type: t, OrderID: p.OrderID, UserID: p.UserID, OccurredAt: time.Now().UTC()}
	if err == nil {
		e.Status = order.Status
	}
	publish(ctx, u.events, u.logger, e)
}

// amountDue is the package price converted with the package currency rate.
func amountDue(order *model.Order) float64 {
	rate := order.Package.Currency.Rate
	if rate <= 0 {
		rate = 1
	}
	return math.Round(order.Package.Price*rate*100) / 100
}

// validateMobileMoney accepts a zero amount as "charge the order total".
func validateMobileMoney(req model.MobileMoneyRequest, due float64) error {
	verr := domainErrors.NewValidationError()
	if strings.TrimSpace(req.PhoneNumber) == "" {
		verr.Add("phone_number", "Phone number is required")
	}
	if due <= 0 {
		verr.Add("amount", "Order has no payable amount")
	} else if req.Amount != 0 && math.Abs(req.Amount-due) >= 0.005 {
		verr.Add("amount", "Amount does not match the order total")
	}
	if strings.TrimSpace(req.Email) == "" {
		verr.Add("email", "Email is required")
	}
	return verr.OrNil()
}
