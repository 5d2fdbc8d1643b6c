package classify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimitScorer_PassesThrough(t *testing.T) {
	inner := NopScorer()
	s := LimitScorer(inner, 100)

	scores, err := s.Score(context.Background(), []byte("jpeg"), []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, scores)
}

func TestLimitScorer_NonPositiveRateDisablesLimit(t *testing.T) {
	inner := NopScorer()
	assert.Equal(t, inner, LimitScorer(inner, 0))
	assert.Equal(t, inner, LimitScorer(inner, -1))
}

func TestLimitScorer_CanceledContext(t *testing.T) {
	s := LimitScorer(NopScorer(), 0.001)

	ctx, cancel := context.WithCancel(context.Background())
	// Burn the single burst token, then cancel so the next wait fails fast.
	_, err := s.Score(ctx, nil, []string{"a"})
	require.NoError(t, err)
	cancel()

	_, err = s.Score(ctx, nil, []string{"a"})
	assert.Error(t, err)
}
