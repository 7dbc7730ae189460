package model

import (
	"time"

	"github.com/google/uuid"
)

type CheckoutStatus string

const (
	CheckoutPending   CheckoutStatus = "pending"
	CheckoutCharged   CheckoutStatus = "charged"
	CheckoutCompleted CheckoutStatus = "completed"
	CheckoutFailed    CheckoutStatus = "failed"
)

// CheckoutLine is the snapshot of one cart line taken before charging.
type CheckoutLine struct {
	CartItemID  uuid.UUID `json:"cart_item_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	LargeImage  string    `json:"large_image"`
	Price       int32     `json:"price"`
	Quantity    int32     `json:"quantity"`
}

type CheckoutModel struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Status        CheckoutStatus
	Total         int32
	Lines         []CheckoutLine
	// replayed with the checkout id as idempotency key when the charge is retried
	PaymentToken  string
	ChargeID      *string
	ChargedAmount *int32
	OrderID       *uuid.UUID
	FailureReason *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
