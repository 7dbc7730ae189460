package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/charge"
)

type StripeGateway struct {
	client *charge.Client
}

var _ Gateway = (*StripeGateway)(nil)

const stripeNetworkRetries = 2

func NewStripeGateway(secretKey string) *StripeGateway {
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		MaxNetworkRetries: stripe.Int64(stripeNetworkRetries),
	})
	return &StripeGateway{
		client: &charge.Client{B: backend, Key: secretKey},
	}
}

func (g *StripeGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	params := &stripe.ChargeParams{
		Amount:   stripe.Int64(req.Amount),
		Currency: stripe.String(req.Currency),
	}
	if req.Description != "" {
		params.Description = stripe.String(req.Description)
	}
	params.Context = ctx
	params.AddExtra("source", req.Source)
	params.SetIdempotencyKey(req.IdempotencyKey)

	ch, err := g.client.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			switch stripeErr.Type {
			case stripe.ErrorTypeCard:
				return nil, fmt.Errorf("%w: %s", ErrDeclined, stripeErr.Msg)
			case stripe.ErrorTypeInvalidRequest:
				return nil, fmt.Errorf("%w: %s", ErrRejected, stripeErr.Msg)
			}
		}
		return nil, err
	}
	return &ChargeResult{ID: ch.ID, Amount: ch.Amount}, nil
}
