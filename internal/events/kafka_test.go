package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
)

func TestKafkaPublisherSendsJSON(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var e Event
		if err := json.Unmarshal(val, &e); err != nil {
			return err
		}
		if e.Type != OrderStatusChanged || e.OrderID != "o-1" {
			return errors.New("unexpected payload " + string(val))
		}
		return nil
	})

	pub := NewKafkaPublisherWithProducer(producer, "orders")
	if err := pub.Publish(context.Background(), Event{Type: OrderStatusChanged, OrderID: "o-1"}); err != nil {
		t.Fatalf("publish returned error: %v", err)
	}
	if err := pub.Close(); err != nil {
		t.Fatalf("close returned error: %v", err)
	}
}

func TestKafkaPublisherWrapsSendError(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	pub := NewKafkaPublisherWithProducer(producer, "orders")
	err := pub.Publish(context.Background(), Event{Type: OrderCreated, OrderID: "o-1"})
	if !errors.Is(err, sarama.ErrOutOfBrokers) {
		t.Fatalf("expected broker error, got %v", err)
	}
	_ = pub.Close()
}

func TestKafkaPublisherHonoursCancelledContext(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	pub := NewKafkaPublisherWithProducer(producer, "orders")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := pub.Publish(ctx, Event{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
	_ = pub.Close()
}
