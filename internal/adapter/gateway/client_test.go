package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	domainErrors "github.com/polkiloo/cvorders/internal/domain/errors"
	"github.com/polkiloo/cvorders/internal/domain/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewHTTPClientValidatesURL(t *testing.T) {
	if _, err := NewHTTPClient("://bad-url", "", testLogger()); err == nil {
		t.Fatal("expected error for invalid url")
	}
	if _, err := NewHTTPClient("/relative", "", testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
}

func TestCheckoutSendsPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != checkoutPath {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("unexpected authorization %q", got)
		}
		var payload checkoutPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		if payload.APIRef != "pay-1" || payload.PhoneNumber != "254700000000" || payload.Currency != "KES" {
			t.Errorf("unexpected payload %+v", payload)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"chk-1","url":"https://pay.example/chk-1","invoice":{"invoice_id":"INV-1","state":"PENDING","api_ref":"pay-1"}}`))
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL, "sk-test", testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	res, err := client.Checkout(context.Background(), model.CheckoutRequest{
		MobileMoneyRequest: model.MobileMoneyRequest{PhoneNumber: "254700000000", Amount: 1500},
		APIRef:             "pay-1",
		Currency:           "KES",
	})
	if err != nil {
		t.Fatalf("checkout returned error: %v", err)
	}
	if res.InvoiceID != "INV-1" || res.PaymentURL != "https://pay.example/chk-1" || res.State != model.PaymentStatePending {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestStatusParsesState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != statusPath {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"invoice":{"invoice_id":"INV-1","state":"COMPLETE","api_ref":"pay-1"}}`))
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL, "", testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	status, err := client.Status(context.Background(), "INV-1")
	if err != nil {
		t.Fatalf("status returned error: %v", err)
	}
	if status.State != model.PaymentStateComplete || status.APIRef != "pay-1" {
		t.Fatalf("unexpected status %+v", status)
	}
}

func TestRequestsHandleSpecialStatuses(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		header     http.Header
		body       string
		check      func(t *testing.T, err error)
	}{
		{
			name:       "not found",
			statusCode: http.StatusNotFound,
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrPaymentNotFound) {
					t.Fatalf("expected ErrPaymentNotFound, got %v", err)
				}
			},
		},
		{
			name:       "too many requests",
			statusCode: http.StatusTooManyRequests,
			header:     http.Header{"Retry-After": []string{"7"}},
			check: func(t *testing.T, err error) {
				var tm TooManyRequestsError
				if !errors.As(err, &tm) || tm.RetryAfter != 7*time.Second {
					t.Fatalf("expected TooManyRequestsError with 7s, got %v", err)
				}
			},
		},
		{
			name:       "server error",
			statusCode: http.StatusBadGateway,
			check: func(t *testing.T, err error) {
				if !errors.Is(err, domainErrors.ErrGateway) {
					t.Fatalf("expected ErrGateway, got %v", err)
				}
			},
		},
		{
			name:       "unknown state",
			statusCode: http.StatusOK,
			body:       `{"invoice":{"invoice_id":"INV-1","state":"REVERSED"}}`,
			check: func(t *testing.T, err error) {
				if !errors.Is(err, domainErrors.ErrGateway) {
					t.Fatalf("expected ErrGateway, got %v", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				for key, values := range tt.header {
					for _, v := range values {
						w.Header().Add(key, v)
					}
				}
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client, err := NewHTTPClient(srv.URL, "", testLogger())
			if err != nil {
				t.Fatalf("failed to create client: %v", err)
			}

			_, err = client.Status(context.Background(), "INV-1")
			tt.check(t, err)
		})
	}
}

func TestParseRetryAfter(t *testing.T) {
	if got := parseRetryAfter(""); got != 5*time.Second {
		t.Fatalf("expected default, got %v", got)
	}
	if got := parseRetryAfter("3"); got != 3*time.Second {
		t.Fatalf("expected 3s, got %v", got)
	}
	if got := parseRetryAfter("soon"); got != 5*time.Second {
		t.Fatalf("expected default for garbage, got %v", got)
	}
	future := time.Now().Add(time.Minute).UTC().Format(http.TimeFormat)
	if got := parseRetryAfter(future); got <= 0 || got > time.Minute {
		t.Fatalf("unexpected duration for http date: %v", got)
	}
}
