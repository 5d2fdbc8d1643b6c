package classify

import (
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/mls-photo-cli/internal/model"
)

func fill(img *image.RGBA, yMin, yMax int, c color.RGBA) {
	b := img.Bounds()
	for y := yMin; y < yMax; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.Set(x, y, c)
		}
	}
}

func TestIsOutdoorDetectionShortCircuit(t *testing.T) {
	det := model.DetectionSet{"outdoor": 0.9}
	assert.True(t, IsOutdoor(nil, det))

	det = model.DetectionSet{"outside": 0.7}
	assert.True(t, IsOutdoor(nil, det))
}

func TestIsOutdoorSkyRatio(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 30, 30))
	fill(img, 0, 30, color.RGBA{R: 120, G: 120, B: 120, A: 255})
	// Blue-dominant top third trips the sky test.
	fill(img, 0, 10, color.RGBA{R: 90, G: 140, B: 220, A: 255})

	assert.True(t, IsOutdoor(img, model.DetectionSet{}))
}

func TestIsOutdoorGrassRatio(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 30, 30))
	fill(img, 0, 30, color.RGBA{R: 120, G: 120, B: 120, A: 255})
	// Green-dominant bottom third trips the grass test.
	fill(img, 20, 30, color.RGBA{R: 60, G: 160, B: 50, A: 255})

	assert.True(t, IsOutdoor(img, model.DetectionSet{}))
}

func TestIsOutdoorBrightnessVariance(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	// Half near-black, half near-white: variance far above 5000.
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			v := uint8(10)
			if rng.Intn(2) == 0 {
				v = 245
			}
			img.Set(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}

	assert.True(t, IsOutdoor(img, model.DetectionSet{}))
}

func TestIsOutdoorFlatInteriorIsFalse(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 30, 30))
	fill(img, 0, 30, color.RGBA{R: 150, G: 140, B: 130, A: 255})

	assert.False(t, IsOutdoor(img, model.DetectionSet{}))
}

func TestIsOutdoorNilImage(t *testing.T) {
	assert.False(t, IsOutdoor(nil, model.DetectionSet{}))
}
