package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	domainErrors "github.com/polkiloo/cvorders/internal/domain/errors"
	"github.com/polkiloo/cvorders/internal/domain/model"
)

const (
	checkoutPath = "/api/v1/checkout/"
	statusPath   = "/api/v1/payment/status/"
)

// ErrPaymentNotFound indicates the gateway doesn't know the invoice.
var ErrPaymentNotFound = errors.New("payment not found at gateway")

// TooManyRequestsError represents rate limiting signal from the gateway.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// Client exposes payment gateway operations.
type Client interface {
	Checkout(ctx context.Context, req model.CheckoutRequest) (*model.CheckoutResult, error)
	Status(ctx context.Context, invoiceID string) (*model.PaymentStatus, error)
}

// HTTPClient implements Client via the gateway REST API.
type HTTPClient struct {
	baseURL    *url.URL
	secretKey  string
	httpClient *http.Client
	logger     *slog.Logger
}

type checkoutPayload struct {
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       string  `json:"email"`
	Host        string  `json:"host"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	PhoneNumber string  `json:"phone_number"`
	APIRef      string  `json:"api_ref"`
	RedirectURL string  `json:"redirect_url"`
	Method      string  `json:"method"`
}

type invoice struct {
	InvoiceID string `json:"invoice_id"`
	State     string `json:"state"`
	APIRef    string `json:"api_ref"`
}

type checkoutResponse struct {
	ID      string  `json:"id"`
	URL     string  `json:"url"`
	Invoice invoice `json:"invoice"`
}

type statusResponse struct {
	Invoice invoice `json:"invoice"`
}

// NewHTTPClient creates gateway client with default timeout.
func NewHTTPClient(baseURL, secretKey string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse gateway url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("gateway url must be absolute")
	}
	return &HTTPClient{
		baseURL:   parsed,
		secretKey: secretKey,
		logger:    logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Checkout creates an invoice and triggers the mobile-money push.
func (c *HTTPClient) Checkout(ctx context.Context, req model.CheckoutRequest) (*model.CheckoutResult, error) {
	payload := checkoutPayload{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Host:        req.Host,
		Amount:      req.Amount,
		Currency:    req.Currency,
		PhoneNumber: req.PhoneNumber,
		APIRef:      req.APIRef,
		RedirectURL: req.RedirectURL,
		Method:      "M-PESA",
	}

	var data checkoutResponse
	if err := c.post(ctx, checkoutPath, payload, &data); err != nil {
		return nil, err
	}

	invoiceID := data.Invoice.InvoiceID
	if invoiceID == "" {
		invoiceID = data.ID
	}
	if invoiceID == "" {
		return nil, fmt.Errorf("%w: checkout response without invoice", domainErrors.ErrGateway)
	}

	state := model.PaymentStatePending
	if data.Invoice.State != "" {
		parsed, err := model.ParsePaymentState(data.Invoice.State)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domainErrors.ErrGateway, err)
		}
		state = parsed
	}

	return &model.CheckoutResult{InvoiceID: invoiceID, PaymentURL: data.URL, State: state}, nil
}

// Status queries the gateway for invoice state.
func (c *HTTPClient) Status(ctx context.Context, invoiceID string) (*model.PaymentStatus, error) {
	var data statusResponse
	if err := c.post(ctx, statusPath, map[string]string{"invoice_id": invoiceID}, &data); err != nil {
		return nil, err
	}
	state, err := model.ParsePaymentState(data.Invoice.State)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrGateway, err)
	}
	id := data.Invoice.InvoiceID
	if id == "" {
		id = invoiceID
	}
	return &model.PaymentStatus{InvoiceID: id, APIRef: data.Invoice.APIRef, State: state}, nil
}

func (c *HTTPClient) post(ctx context.Context, p string, payload, out any) error {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, p) + "/"

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if c.secretKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.secretKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domainErrors.ErrGateway, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("%w: decode response: %v", domainErrors.ErrGateway, err)
		}
		return nil
	case http.StatusNotFound:
		return ErrPaymentNotFound
	case http.StatusTooManyRequests:
		return TooManyRequestsError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	default:
		raw, _ := io.ReadAll(resp.Body)
		c.logger.Error("gateway request failed",
			slog.String("path", p),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(raw)),
		)
		return fmt.Errorf("%w: %s", domainErrors.ErrGateway, resp.Status)
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
