package gateway

import (
	"io"
	"log/slog"
	"testing"

	"github.com/polkiloo/cvorders/internal/config"
)

func TestNewClientUsesConfig(t *testing.T) {
	cfg := &config.Config{PaymentGatewayAddress: "http://example.com", PaymentSecretKey: "sk"}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	client, err := newClient(clientParams{Config: cfg, Logger: logger})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client == nil {
		t.Fatal("expected client instance")
	}
}

func TestNewClientRejectsRelativeAddress(t *testing.T) {
	cfg := &config.Config{PaymentGatewayAddress: "gateway.local"}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	if _, err := newClient(clientParams{Config: cfg, Logger: logger}); err == nil {
		t.Fatal("expected error for relative address")
	}
}
