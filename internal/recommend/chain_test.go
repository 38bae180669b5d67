package recommend

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spigell/hh-advisor/internal/market"
	"github.com/spigell/hh-advisor/internal/profile"
)

type stubTier struct {
	name   string
	result *market.Result
	err    error
	calls  int
}

func (s *stubTier) Name() string { return s.name }

func (s *stubTier) Recommend(ctx context.Context, _ *profile.Profile, _ market.Options) (*market.Result, error) {
	s.calls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.result, s.err
}

func TestChainReturnsFirstSuccessWithoutFallbackFlag(t *testing.T) {
	first := &stubTier{name: "external", result: &market.Result{MarketFitScore: 80}}
	second := &stubTier{name: "smart"}

	chain := NewChain(zap.NewNop(), first, second)

	result, err := chain.Run(context.Background(), &profile.Profile{}, market.Options{})
	require.NoError(t, err)

	assert.Equal(t, 80, result.MarketFitScore)
	assert.False(t, result.Debug.Fallback)
	assert.Zero(t, second.calls)
}

func TestChainDegradesToNextTier(t *testing.T) {
	first := &stubTier{name: "external", err: fmt.Errorf("quota exceeded")}
	second := &stubTier{name: "smart", result: &market.Result{MarketFitScore: 55}}

	chain := NewChain(zap.NewNop(), first, second)

	result, err := chain.Run(context.Background(), &profile.Profile{}, market.Options{})
	require.NoError(t, err)

	assert.Equal(t, 55, result.MarketFitScore)
	assert.True(t, result.Debug.Fallback)
	assert.Equal(t, 1, first.calls)
}

func TestChainErrsWhenEveryTierFails(t *testing.T) {
	chain := NewChain(zap.NewNop(),
		&stubTier{name: "external", err: fmt.Errorf("down")},
		&stubTier{name: "smart", err: fmt.Errorf("down too")},
	)

	_, err := chain.Run(context.Background(), &profile.Profile{}, market.Options{})
	assert.Error(t, err)
}

func TestChainPropagatesCancellationInsteadOfDegrading(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fallback := &stubTier{name: "fallback", result: &market.Result{}}
	chain := NewChain(zap.NewNop(), &stubTier{name: "smart", err: fmt.Errorf("down")}, fallback)

	_, err := chain.Run(ctx, &profile.Profile{}, market.Options{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, fallback.calls)
}

func TestChainRejectsNilProfile(t *testing.T) {
	chain := NewChain(zap.NewNop(), &stubTier{name: "fallback", result: &market.Result{}})

	_, err := chain.Run(context.Background(), nil, market.Options{})
	assert.Error(t, err)
}

func TestStaticTierAlwaysAnswers(t *testing.T) {
	static := NewStatic()

	// An entirely empty profile still gets default roles, a fixed score and
	// generic suggestions.
	result, err := static.Recommend(context.Background(), &profile.Profile{}, market.Options{})
	require.NoError(t, err)

	assert.Equal(t, staticScore, result.MarketFitScore)
	assert.Equal(t, "fallback", result.Debug.Source)
	assert.True(t, result.Debug.Fallback)
	assert.NotEmpty(t, result.Roles)
	assert.NotEmpty(t, result.Courses)
}

func TestChainEndsWithStaticTier(t *testing.T) {
	chain := NewChain(zap.NewNop(),
		&stubTier{name: "smart", err: fmt.Errorf("hh unreachable")},
		NewStatic(),
	)

	result, err := chain.Run(context.Background(), &profile.Profile{
		Skills: []profile.Skill{{Name: "React"}},
	}, market.Options{})
	require.NoError(t, err)

	assert.Equal(t, staticScore, result.MarketFitScore)
	assert.True(t, result.Debug.Fallback)
	assert.NotEmpty(t, result.Courses)
	assert.Equal(t, []string{"smart", "fallback"}, chain.Tiers())
}
