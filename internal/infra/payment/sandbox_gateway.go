package payment

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// DeclinedSource is the token the sandbox always declines, same as stripe's test token.
const DeclinedSource = "tok_chargeDeclined"

// SandboxGateway approves every other source without talking to a provider.
// It is used when no stripe key is configured.
type SandboxGateway struct {
	mu      sync.Mutex
	charges map[string]*ChargeResult
}

var _ Gateway = (*SandboxGateway)(nil)

func NewSandboxGateway() *SandboxGateway {
	return &SandboxGateway{charges: make(map[string]*ChargeResult)}
}

func (g *SandboxGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.Source == "" || req.Source == DeclinedSource {
		return nil, fmt.Errorf("%w: your card was declined", ErrDeclined)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if res, ok := g.charges[req.IdempotencyKey]; ok && req.IdempotencyKey != "" {
		return res, nil
	}
	res := &ChargeResult{ID: "ch_sandbox_" + uuid.NewString(), Amount: req.Amount}
	if req.IdempotencyKey != "" {
		g.charges[req.IdempotencyKey] = res
	}
	return res, nil
}
