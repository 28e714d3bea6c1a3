package restoration

import (
	"context"
	"fmt"

	"chroma/internal/shared/logger"
)

// Attempt records one provider failure while walking the chain. Callers
// persist a failed usage event per attempt, so nothing here is lossy.
type Attempt struct {
	Provider string
	Err      error
}

// Chain tries providers in configuration order until one succeeds. A dead
// context stops the walk immediately: once the request deadline passed,
// every remaining provider would fail the same way.
type Chain struct {
	providers []Provider
	logger    logger.Interface
}

// NewChain creates a fallback chain over the given providers.
func NewChain(logger logger.Interface, providers ...Provider) *Chain {
	return &Chain{
		providers: providers,
		logger:    logger,
	}
}

// Ensure Chain implements Provider so a chain can nest inside another chain.
var _ Provider = (*Chain)(nil)

// Name identifies the chain in logs.
func (c *Chain) Name() string {
	return "chain"
}

// Restore tries each provider in order. It returns the first success along
// with the failures that preceded it. When every provider fails, the last
// error is returned wrapped, with the full attempt list.
func (c *Chain) Restore(ctx context.Context, image []byte, contentType string) (*Result, error) {
	result, _, err := c.RestoreWithAttempts(ctx, image, contentType)
	return result, err
}

// RestoreWithAttempts is Restore with the per-provider failure records.
func (c *Chain) RestoreWithAttempts(ctx context.Context, image []byte, contentType string) (*Result, []Attempt, error) {
	if len(c.providers) == 0 {
		return nil, nil, fmt.Errorf("no restoration providers configured")
	}

	var attempts []Attempt
	for _, provider := range c.providers {
		if err := ctx.Err(); err != nil {
			return nil, attempts, err
		}

		result, err := provider.Restore(ctx, image, contentType)
		if err == nil {
			return result, attempts, nil
		}

		attempts = append(attempts, Attempt{Provider: provider.Name(), Err: err})
		c.logger.Warnw("restoration provider failed, falling through",
			"provider", provider.Name(),
			"error", err,
		)

		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, attempts, ctxErr
		}
	}

	last := attempts[len(attempts)-1]
	return nil, attempts, fmt.Errorf("all restoration providers failed: %w", last.Err)
}
