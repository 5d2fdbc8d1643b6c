package classify

import "context"

// nopScorer returns zero for every phrase. With no model configured the
// cascade still runs: the pixel heuristic can drive the outdoor rules, and
// everything else resolves to OTHER.
type nopScorer struct{}

// NopScorer returns a Scorer for running without a vision backend.
func NopScorer() Scorer { return nopScorer{} }

func (nopScorer) Score(_ context.Context, _ []byte, vocabulary []string) ([]float64, error) {
	return make([]float64, len(vocabulary)), nil
}
