package model

import (
	"fmt"
	"time"
)

// PaymentState mirrors gateway invoice states.
type PaymentState string

const (
	PaymentStatePending    PaymentState = "PENDING"
	PaymentStateProcessing PaymentState = "PROCESSING"
	PaymentStateComplete   PaymentState = "COMPLETE"
	PaymentStateFailed     PaymentState = "FAILED"
)

// Final reports whether no further transitions are expected.
func (s PaymentState) Final() bool {
	return s == PaymentStateComplete || s == PaymentStateFailed
}

// ParsePaymentState accepts gateway states and inline widget event names.
func ParsePaymentState(raw string) (PaymentState, error) {
	switch raw {
	case "PENDING":
		return PaymentStatePending, nil
	case "PROCESSING", "IN-PROGRESS":
		return PaymentStateProcessing, nil
	case "COMPLETE":
		return PaymentStateComplete, nil
	case "FAILED":
		return PaymentStateFailed, nil
	default:
		return "", fmt.Errorf("unknown payment state %q", raw)
	}
}

// PaymentMethod distinguishes inline widget checkout from mobile-money push.
type PaymentMethod string

const (
	PaymentMethodWidget PaymentMethod = "widget"
	PaymentMethodMpesa  PaymentMethod = "mpesa"
)

// Payment is a single payment attempt for an order. ID doubles as api_ref.
type Payment struct {
	ID         string
	OrderID    string
	UserID     int64
	Method     PaymentMethod
	InvoiceID  string
	Amount     float64
	Currency   string
	Phone      string
	State      PaymentState
	PaymentURL string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	CheckedAt  *time.Time
}

// MobileMoneyRequest is the STK push payload supplied by the checkout page.
type MobileMoneyRequest struct {
	FirstName   string
	LastName    string
	Email       string
	Host        string
	Amount      float64
	PhoneNumber string
	RedirectURL string
}

// CheckoutRequest is sent to the payment gateway.
type CheckoutRequest struct {
	MobileMoneyRequest
	APIRef   string
	Currency string
}

// CheckoutResult is the gateway response to a checkout request.
type CheckoutResult struct {
	InvoiceID  string
	PaymentURL string
	State      PaymentState
}

// PaymentStatus is the gateway view of an invoice.
type PaymentStatus struct {
	InvoiceID string
	APIRef    string
	State     PaymentState
}

// PaymentOutcome is returned to the checkout page.
type PaymentOutcome struct {
	Payment    *Payment
	PaymentURL string
	Completed  bool
}

// WebhookEvent is a gateway notification.
type WebhookEvent struct {
	InvoiceID string
	State     string
	APIRef    string
	Challenge string
}
