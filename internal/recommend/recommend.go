// Package recommend arranges recommendation tiers into a degradation chain:
// an optional AI tier, the live market aggregator, and a network-free
// fallback that always answers.
package recommend

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/hh-advisor/internal/market"
	"github.com/spigell/hh-advisor/internal/profile"
)

// Recommender is one tier of the chain. Implementations must be safe for
// concurrent use.
type Recommender interface {
	Name() string
	Recommend(ctx context.Context, p *profile.Profile, opts market.Options) (*market.Result, error)
}

// Chain tries tiers in order and returns the first successful result.
// Caller cancellation is propagated immediately instead of degrading.
type Chain struct {
	logger *zap.Logger
	tiers  []Recommender
}

func NewChain(logger *zap.Logger, tiers ...Recommender) *Chain {
	return &Chain{logger: logger, tiers: tiers}
}

// Tiers returns the tier names in degradation order.
func (c *Chain) Tiers() []string {
	names := make([]string, 0, len(c.tiers))
	for _, tier := range c.tiers {
		names = append(names, tier.Name())
	}
	return names
}

func (c *Chain) Run(ctx context.Context, p *profile.Profile, opts market.Options) (*market.Result, error) {
	if p == nil {
		return nil, fmt.Errorf("profile is required")
	}

	for i, tier := range c.tiers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := tier.Recommend(ctx, p, opts)
		if err == nil {
			if i > 0 {
				result.Debug.Fallback = true
			}
			c.logger.Info("recommendation produced",
				zap.String("source", tier.Name()),
				zap.Int("score", result.MarketFitScore),
			)
			return result, nil
		}

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		c.logger.Warn("recommender failed, degrading to next tier",
			zap.String("source", tier.Name()),
			zap.Error(err),
		)
	}

	return nil, fmt.Errorf("all %d recommendation tiers failed", len(c.tiers))
}
