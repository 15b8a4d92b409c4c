package dto

import "github.com/polkiloo/cvorders/internal/domain/model"

// MobileMoneyRequest starts an STK push checkout.
type MobileMoneyRequest struct {
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       string  `json:"email"`
	Host        string  `json:"host"`
	Amount      float64 `json:"amount"`
	PhoneNumber string  `json:"phone_number"`
	RedirectURL string  `json:"redirect_url"`
}

func (r MobileMoneyRequest) Model() model.MobileMoneyRequest {
	return model.MobileMoneyRequest{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		Host:        r.Host,
		Amount:      r.Amount,
		PhoneNumber: r.PhoneNumber,
		RedirectURL: r.RedirectURL,
	}
}

// WidgetEventRequest is a callback of the inline checkout widget.
type WidgetEventRequest struct {
	Event     string `json:"event"`
	InvoiceID string `json:"invoiceId"`
}

// WebhookRequest is the gateway notification payload.
type WebhookRequest struct {
	InvoiceID string `json:"invoice_id"`
	State     string `json:"state"`
	APIRef    string `json:"api_ref"`
	Challenge string `json:"challenge"`
}

func (r WebhookRequest) Model() model.WebhookEvent {
	return model.WebhookEvent{InvoiceID: r.InvoiceID, State: r.State, APIRef: r.APIRef, Challenge: r.Challenge}
}

// PaymentResponse describes a payment and where to continue.
type PaymentResponse struct {
	ID         string  `json:"id"`
	OrderID    string  `json:"orderId"`
	InvoiceID  string  `json:"invoiceId"`
	Method     string  `json:"method"`
	State      string  `json:"state"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	PaymentURL string  `json:"paymentUrl,omitempty"`
}

func NewPaymentResponse(o *model.PaymentOutcome) PaymentResponse {
	p := o.Payment
	return PaymentResponse{
		ID:         p.ID,
		OrderID:    p.OrderID,
		InvoiceID:  p.InvoiceID,
		Method:     string(p.Method),
		State:      string(p.State),
		Amount:     p.Amount,
		Currency:   p.Currency,
		PaymentURL: o.PaymentURL,
	}
}
