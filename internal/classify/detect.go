package classify

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/mls-photo-cli/internal/model"
)

// DetectionThreshold is the minimum probability for a phrase to enter the
// detection set.
const DetectionThreshold = 0.6

// Scorer ranks an image against a candidate phrase vocabulary. It returns
// one probability per phrase, softmax-normalized over the vocabulary.
// Adapters for concrete vision backends live under pkg/.
type Scorer interface {
	Score(ctx context.Context, imageJPEG []byte, vocabulary []string) ([]float64, error)
}

// Detect runs the scorer over the detection vocabulary and keeps phrases at
// or above DetectionThreshold. Any scorer failure degrades to an empty set
// so later cascade layers still run.
func Detect(ctx context.Context, scorer Scorer, imageJPEG []byte) model.DetectionSet {
	det := model.DetectionSet{}

	scores, err := scorer.Score(ctx, imageJPEG, DetectionVocabulary)
	if err != nil {
		zap.L().Warn("classify: detection pass failed", zap.Error(err))
		return det
	}
	if len(scores) != len(DetectionVocabulary) {
		zap.L().Warn("classify: scorer returned wrong score count",
			zap.Int("got", len(scores)),
			zap.Int("want", len(DetectionVocabulary)),
		)
		return det
	}

	for i, p := range scores {
		if p >= DetectionThreshold {
			det[DetectionVocabulary[i]] = p
		}
	}
	return det
}
