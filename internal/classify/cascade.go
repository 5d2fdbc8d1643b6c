// Package classify implements the three-layer room classification cascade:
// hard object rules, heuristic combinations, then a zero-shot scene fallback.
package classify

import (
	"context"
	"image"

	"go.uber.org/zap"

	"github.com/sells-group/mls-photo-cli/internal/model"
)

// FallbackThreshold is the minimum arg-max probability for the zero-shot
// scene fallback to be accepted.
const FallbackThreshold = 0.65

// Cascade classifies photos through ordered rule layers backed by an
// injected Scorer. It holds no mutable state and is safe for reuse across
// runs.
type Cascade struct {
	scorer Scorer
}

// NewCascade builds a Cascade around the given scorer.
func NewCascade(scorer Scorer) *Cascade {
	return &Cascade{scorer: scorer}
}

// Classify produces exactly one canonical label for the photo. img is the
// decoded frame used by the outdoor pixel heuristic; imageJPEG is the
// encoded form handed to the scorer. Errors never escape: every failure
// path resolves to OTHER.
func (c *Cascade) Classify(ctx context.Context, img image.Image, imageJPEG []byte) model.ClassificationResult {
	det := Detect(ctx, c.scorer, imageJPEG)
	outdoor := IsOutdoor(img, det)

	for _, rule := range HardRules {
		if label, ok := rule.Match(det, outdoor); ok {
			return finish(label, rule.Name)
		}
	}
	for _, rule := range HeuristicRules {
		if label, ok := rule.Match(det, outdoor); ok {
			return finish(label, rule.Name)
		}
	}

	label, ok := c.fallback(ctx, imageJPEG)
	if !ok {
		return finish(model.LabelOther, "default")
	}
	return finish(label, "fallback")
}

// fallback runs the zero-shot scene classification over the 9-label room
// vocabulary and accepts the arg-max only above FallbackThreshold.
func (c *Cascade) fallback(ctx context.Context, imageJPEG []byte) (model.Label, bool) {
	scores, err := c.scorer.Score(ctx, imageJPEG, SceneVocabulary)
	if err != nil {
		zap.L().Warn("classify: scene fallback failed", zap.Error(err))
		return "", false
	}
	if len(scores) != len(SceneVocabulary) {
		return "", false
	}

	best := 0
	for i := range scores {
		if scores[i] > scores[best] {
			best = i
		}
	}
	if scores[best] < FallbackThreshold {
		return "", false
	}
	return model.Canonicalize(SceneVocabulary[best]), true
}

// finish applies the canonical-set safety net regardless of which layer
// produced the label.
func finish(label model.Label, provenance string) model.ClassificationResult {
	return model.ClassificationResult{
		Label:      model.Canonicalize(string(label)),
		Provenance: provenance,
	}
}
