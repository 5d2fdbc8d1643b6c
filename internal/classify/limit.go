package classify

import (
	"context"

	"golang.org/x/time/rate"
)

// limitedScorer throttles calls to an underlying Scorer. Hosted vision APIs
// meter requests per second, and a batch run over a large photo folder can
// otherwise burst well past the quota.
type limitedScorer struct {
	inner   Scorer
	limiter *rate.Limiter
}

// LimitScorer wraps a Scorer with a requests-per-second cap. A non-positive
// rps returns the scorer unchanged.
func LimitScorer(inner Scorer, rps float64) Scorer {
	if rps <= 0 {
		return inner
	}
	return &limitedScorer{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

func (s *limitedScorer) Score(ctx context.Context, imageJPEG []byte, vocabulary []string) ([]float64, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return s.inner.Score(ctx, imageJPEG, vocabulary)
}
