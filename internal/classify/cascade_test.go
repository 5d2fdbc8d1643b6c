package classify

import (
	"context"
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/mls-photo-cli/internal/model"
)

// stubScorer returns fixed per-phrase scores keyed by phrase text. Phrases
// without an entry score zero. A non-nil err fails every call.
type stubScorer struct {
	scores map[string]float64
	err    error
}

func (s *stubScorer) Score(_ context.Context, _ []byte, vocabulary []string) ([]float64, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]float64, len(vocabulary))
	for i, p := range vocabulary {
		out[i] = s.scores[p]
	}
	return out, nil
}

// grayImage is a flat mid-gray frame: no sky, no grass, near-zero variance.
func grayImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 30, 30))
	for y := 0; y < 30; y++ {
		for x := 0; x < 30; x++ {
			img.Set(x, y, color.RGBA{R: 120, G: 120, B: 120, A: 255})
		}
	}
	return img
}

func classifyWith(t *testing.T, scores map[string]float64) model.ClassificationResult {
	t.Helper()
	c := NewCascade(&stubScorer{scores: scores})
	return c.Classify(context.Background(), grayImage(), []byte("jpeg"))
}

func TestHardRuleBathroomBeatsBedroom(t *testing.T) {
	res := classifyWith(t, map[string]float64{
		"toilet": 0.9,
		"bed":    0.95,
	})
	assert.Equal(t, model.LabelBathroom, res.Label)
	assert.Equal(t, "hard:bathroom", res.Provenance)
}

func TestLaundryRule(t *testing.T) {
	t.Run("washer alone never matches", func(t *testing.T) {
		res := classifyWith(t, map[string]float64{"washing machine": 0.9})
		assert.NotEqual(t, model.LabelLaundryRoom, res.Label)
	})

	t.Run("washer and dryer always match", func(t *testing.T) {
		res := classifyWith(t, map[string]float64{
			"washing machine": 0.9,
			"clothes dryer":   0.8,
		})
		assert.Equal(t, model.LabelLaundryRoom, res.Label)
		assert.Equal(t, "hard:laundry", res.Provenance)
	})

	t.Run("dryer plus indicator matches", func(t *testing.T) {
		res := classifyWith(t, map[string]float64{
			"clothes dryer":  0.8,
			"laundry basket": 0.7,
		})
		assert.Equal(t, model.LabelLaundryRoom, res.Label)
	})

	t.Run("washer plus unrelated detection does not match", func(t *testing.T) {
		res := classifyWith(t, map[string]float64{
			"washing machine": 0.9,
			"a table":         0.7,
		})
		assert.NotEqual(t, model.LabelLaundryRoom, res.Label)
	})
}

func TestOfficeRule(t *testing.T) {
	res := classifyWith(t, map[string]float64{
		"a desk":   0.8,
		"a laptop": 0.7,
	})
	assert.Equal(t, model.LabelOffice, res.Label)

	// Desk without chair or computer falls through.
	res = classifyWith(t, map[string]float64{"a desk": 0.8})
	assert.NotEqual(t, model.LabelOffice, res.Label)
}

func TestDeckAndExteriorRules(t *testing.T) {
	t.Run("deck needs outdoor furniture and context", func(t *testing.T) {
		res := classifyWith(t, map[string]float64{
			"outdoor":           0.9,
			"outdoor furniture": 0.8,
			"trees":             0.7,
		})
		assert.Equal(t, model.LabelDeck, res.Label)
		assert.Equal(t, "hard:deck", res.Provenance)
	})

	t.Run("bare outdoor scene is exterior", func(t *testing.T) {
		res := classifyWith(t, map[string]float64{
			"outside": 0.9,
			"grass":   0.8,
		})
		assert.Equal(t, model.LabelExterior, res.Label)
		assert.Equal(t, "hard:exterior", res.Provenance)
	})

	t.Run("outdoor with furniture is not exterior", func(t *testing.T) {
		res := classifyWith(t, map[string]float64{
			"outdoor": 0.9,
			"a couch": 0.8,
		})
		assert.NotEqual(t, model.LabelExterior, res.Label)
	})
}

func TestHeuristicRules(t *testing.T) {
	t.Run("kitchen via sink and fridge", func(t *testing.T) {
		res := classifyWith(t, map[string]float64{
			"sink":         0.8,
			"refrigerator": 0.7,
		})
		assert.Equal(t, model.LabelKitchen, res.Label)
		assert.Equal(t, "heuristic:kitchen", res.Provenance)
	})

	t.Run("kitchen via stove and cabinets", func(t *testing.T) {
		res := classifyWith(t, map[string]float64{
			"stove":            0.8,
			"kitchen cabinets": 0.7,
		})
		assert.Equal(t, model.LabelKitchen, res.Label)
	})

	t.Run("dining room vetoed by appliance", func(t *testing.T) {
		res := classifyWith(t, map[string]float64{
			"dining table": 0.8,
			"stove":        0.7,
		})
		assert.NotEqual(t, model.LabelDiningRoom, res.Label)
	})

	t.Run("dining room", func(t *testing.T) {
		res := classifyWith(t, map[string]float64{"dining table": 0.8})
		assert.Equal(t, model.LabelDiningRoom, res.Label)
		assert.Equal(t, "heuristic:dining", res.Provenance)
	})

	t.Run("living room", func(t *testing.T) {
		res := classifyWith(t, map[string]float64{
			"a sofa":     0.8,
			"television": 0.7,
		})
		assert.Equal(t, model.LabelLivingRoom, res.Label)
	})
}

func TestFallbackLayer(t *testing.T) {
	t.Run("confident scene accepted", func(t *testing.T) {
		res := classifyWith(t, map[string]float64{"bedroom": 0.9})
		// No detection phrase scored above threshold, so layer 3 decides.
		assert.Equal(t, model.LabelBedroom, res.Label)
		assert.Equal(t, "fallback", res.Provenance)
	})

	t.Run("below threshold is OTHER", func(t *testing.T) {
		res := classifyWith(t, map[string]float64{"bedroom": 0.5})
		assert.Equal(t, model.LabelOther, res.Label)
		assert.Equal(t, "default", res.Provenance)
	})

	t.Run("scorer error is OTHER", func(t *testing.T) {
		c := NewCascade(&stubScorer{err: eris.New("model unavailable")})
		res := c.Classify(context.Background(), grayImage(), []byte("jpeg"))
		assert.Equal(t, model.LabelOther, res.Label)
		assert.Equal(t, "default", res.Provenance)
	})
}

// TestCascadeAlwaysCanonical fuzzes random detection sets and outdoor flags
// through the rule layers and asserts the result never leaves the canonical
// set.
func TestCascadeAlwaysCanonical(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		det := model.DetectionSet{}
		for _, p := range DetectionVocabulary {
			if rng.Float64() < 0.25 {
				det[p] = 0.6 + rng.Float64()*0.4
			}
		}
		outdoor := rng.Intn(2) == 0

		matched := false
		for _, rule := range append(append([]Rule{}, HardRules...), HeuristicRules...) {
			if label, ok := rule.Match(det, outdoor); ok {
				require.True(t, model.IsCanonical(model.Canonicalize(string(label))),
					"rule %s produced non-canonical label %q", rule.Name, label)
				matched = true
				break
			}
		}
		_ = matched
	}
}

func TestDetect(t *testing.T) {
	ctx := context.Background()

	t.Run("threshold filtering", func(t *testing.T) {
		det := Detect(ctx, &stubScorer{scores: map[string]float64{
			"toilet": 0.75,
			"sink":   0.59,
		}}, []byte("jpeg"))
		assert.True(t, det.Has("toilet"))
		assert.False(t, det.Has("sink"))
	})

	t.Run("error degrades to empty set", func(t *testing.T) {
		det := Detect(ctx, &stubScorer{err: eris.New("quota")}, []byte("jpeg"))
		assert.Empty(t, det)
	})

	t.Run("short score vector degrades to empty set", func(t *testing.T) {
		det := Detect(ctx, &truncatingScorer{}, []byte("jpeg"))
		assert.Empty(t, det)
	})
}

type truncatingScorer struct{}

func (truncatingScorer) Score(_ context.Context, _ []byte, vocabulary []string) ([]float64, error) {
	return make([]float64, len(vocabulary)/2), nil
}
