package payment

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSandboxGatewayIdempotent(t *testing.T) {
	g := NewSandboxGateway()
	req := ChargeRequest{Amount: 4200, Currency: "usd", Source: "tok_visa", IdempotencyKey: "checkout-1"}

	first, err := g.Charge(context.Background(), req)
	require.NoError(t, err)
	require.EqualValues(t, 4200, first.Amount)

	second, err := g.Charge(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	req.IdempotencyKey = "checkout-2"
	third, err := g.Charge(context.Background(), req)
	require.NoError(t, err)
	require.NotEqual(t, first.ID, third.ID)
}

func TestSandboxGatewayDeclines(t *testing.T) {
	g := NewSandboxGateway()
	_, err := g.Charge(context.Background(), ChargeRequest{Amount: 100, Source: DeclinedSource})
	require.ErrorIs(t, err, ErrDeclined)
}

func TestIsFinal(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want bool
	}{
		{"declined", fmt.Errorf("%w: insufficient funds", ErrDeclined), true},
		{"rejected", fmt.Errorf("%w: token already used", ErrRejected), true},
		{"timeout", context.DeadlineExceeded, false},
		{"network", errors.New("connection reset"), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, IsFinal(tc.err))
		})
	}
}
