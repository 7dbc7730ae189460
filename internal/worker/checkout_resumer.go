package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// StalledResumer is the part of the checkout service the resumer drives.
type StalledResumer interface {
	ResumeStalled(ctx context.Context, olderThan time.Duration) (int, error)
}

// CheckoutResumer periodically finishes checkouts that never turned into an order, e.g. because
// the process died between the charge and the commit or the charge outcome was never learned.
type CheckoutResumer struct {
	resumer  StalledResumer
	interval time.Duration
	logger   zerolog.Logger
}

func NewCheckoutResumer(resumer StalledResumer, interval time.Duration, logger zerolog.Logger) *CheckoutResumer {
	if resumer == nil {
		panic("checkout resumer initialization failed: resumer cannot be nil")
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &CheckoutResumer{
		resumer:  resumer,
		interval: interval,
		logger:   logger.With().Str("worker", "checkout_resumer").Logger(),
	}
}

// Run blocks until ctx is cancelled.
func (w *CheckoutResumer) Run(ctx context.Context) {
	w.logger.Info().Dur("interval", w.interval).Msg("checkout resumer started")
	defer w.logger.Info().Msg("checkout resumer stopped")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *CheckoutResumer) tick(ctx context.Context) {
	ctx = w.logger.WithContext(ctx)
	resumed, err := w.resumer.ResumeStalled(ctx, w.interval)
	if err != nil {
		w.logger.Error().Err(err).Int("resumed", resumed).Msg("resume stalled checkouts")
		return
	}
	if resumed > 0 {
		w.logger.Info().Int("resumed", resumed).Msg("resumed stalled checkouts")
	}
}
