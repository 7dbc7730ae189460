package payment

import (
	"context"
	"errors"
)

var (
	ErrDeclined = errors.New("payment declined")
	// ErrRejected is a request the provider will never accept, such as a used or unknown token.
	ErrRejected = errors.New("payment rejected")
)

// IsFinal reports whether err means no charge was or will be taken for the request.
// Any other error leaves the outcome unknown and the request must be replayed with
// the same idempotency key.
func IsFinal(err error) bool {
	return errors.Is(err, ErrDeclined) || errors.Is(err, ErrRejected)
}

type ChargeRequest struct {
	// smallest currency unit
	Amount   int64
	Currency string
	// client-side tokenized card
	Source string
	// the same key always maps to the same charge
	IdempotencyKey string
	Description    string
}

type ChargeResult struct {
	ID     string
	Amount int64
}

//go:generate mockgen -source=gateway.go -destination=mock/mock_gateway.go -package=mock_payment
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
}
