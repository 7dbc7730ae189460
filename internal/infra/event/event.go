package event

import (
	"context"
	"time"
)

const OrderCreatedType = "order.created"

type OrderCreatedLine struct {
	Title    string `json:"title"`
	Price    int32  `json:"price"`
	Quantity int32  `json:"quantity"`
}

type OrderCreated struct {
	Type       string             `json:"type"`
	OrderID    string             `json:"order_id"`
	UserID     string             `json:"user_id"`
	CheckoutID string             `json:"checkout_id"`
	Total      int32              `json:"total"`
	Charge     string             `json:"charge"`
	Lines      []OrderCreatedLine `json:"lines"`
	OccurredAt time.Time          `json:"occurred_at"`
}

//go:generate mockgen -source=event.go -destination=mock/mock_event.go -package=mock_event
type Publisher interface {
	PublishOrderCreated(ctx context.Context, evt OrderCreated) error
	Close() error
}

// NopPublisher drops every event. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishOrderCreated(ctx context.Context, evt OrderCreated) error { return nil }
func (NopPublisher) Close() error                                                    { return nil }
