package recommend

import (
	"context"

	"github.com/spigell/hh-advisor/internal/market"
	"github.com/spigell/hh-advisor/internal/profile"
)

// Local is the live-data tier. It delegates to the market aggregator and
// inherits its error semantics: it fails only when every role search failed.
type Local struct {
	aggregator *market.Aggregator
}

func NewLocal(aggregator *market.Aggregator) *Local {
	return &Local{aggregator: aggregator}
}

func (l *Local) Name() string { return "smart" }

func (l *Local) Recommend(ctx context.Context, p *profile.Profile, opts market.Options) (*market.Result, error) {
	return l.aggregator.Analyze(ctx, p, opts)
}
