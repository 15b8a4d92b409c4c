package session

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/polkiloo/cvorders/internal/domain/errors"
	testhelpers "github.com/polkiloo/cvorders/internal/test"
)

func TestAccessorRequiresIdentity(t *testing.T) {
	repo := &testhelpers.SessionRepositoryStub{
		ActiveOrderFn: func(context.Context, int64) (string, error) {
			t.Fatal("repository must not be called without identity")
			return "", nil
		},
	}
	acc := NewAccessor(repo)
	ctx := context.Background()

	if _, err := acc.ActiveOrder(ctx, 0); !errors.Is(err, domainErrors.ErrNoIdentity) {
		t.Fatalf("expected ErrNoIdentity, got %v", err)
	}
	if err := acc.Bind(ctx, 0, "order"); !errors.Is(err, domainErrors.ErrNoIdentity) {
		t.Fatalf("expected ErrNoIdentity on bind, got %v", err)
	}
	if err := acc.Clear(ctx, 0); !errors.Is(err, domainErrors.ErrNoIdentity) {
		t.Fatalf("expected ErrNoIdentity on clear, got %v", err)
	}
}

func TestAccessorBindAndClear(t *testing.T) {
	repo := testhelpers.NewSessionRepositoryStub()
	acc := NewAccessor(repo)
	ctx := context.Background()

	if _, err := acc.ActiveOrder(ctx, 7); !errors.Is(err, domainErrors.ErrNoActiveOrder) {
		t.Fatalf("expected ErrNoActiveOrder, got %v", err)
	}
	if err := acc.Bind(ctx, 7, "first"); err != nil {
		t.Fatalf("bind returned error: %v", err)
	}
	if err := acc.Bind(ctx, 7, "second"); err != nil {
		t.Fatalf("bind returned error: %v", err)
	}
	got, err := acc.ActiveOrder(ctx, 7)
	if err != nil || got != "second" {
		t.Fatalf("expected last bind to win, got %q err=%v", got, err)
	}
	if err := acc.Clear(ctx, 7); err != nil {
		t.Fatalf("clear returned error: %v", err)
	}
	if _, err := acc.ActiveOrder(ctx, 7); !errors.Is(err, domainErrors.ErrNoActiveOrder) {
		t.Fatalf("expected ErrNoActiveOrder after clear, got %v", err)
	}
}

func TestAccessorBindRejectsEmptyOrder(t *testing.T) {
	acc := NewAccessor(testhelpers.NewSessionRepositoryStub())
	if err := acc.Bind(context.Background(), 1, ""); !errors.Is(err, domainErrors.ErrNoActiveOrder) {
		t.Fatalf("expected ErrNoActiveOrder, got %v", err)
	}
}

func TestAccessorPropagatesRepositoryErrors(t *testing.T) {
	boom := errors.New("db down")
	acc := NewAccessor(&testhelpers.SessionRepositoryStub{
		ActiveOrderFn: func(context.Context, int64) (string, error) { return "", boom },
	})
	if _, err := acc.ActiveOrder(context.Background(), 3); !errors.Is(err, boom) {
		t.Fatalf("expected repository error, got %v", err)
	}
}
