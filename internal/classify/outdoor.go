package classify

import (
	"image"

	"github.com/sells-group/mls-photo-cli/internal/model"
)

// Empirically fixed outdoor-scene thresholds. Not configurable.
const (
	skyRatioThreshold   = 0.2
	grassRatioThreshold = 0.3
	varianceThreshold   = 5000.0
)

// IsOutdoor estimates whether a photo is an outdoor scene. Detector phrases
// win outright; otherwise three pixel statistics are combined: sky-color
// ratio over the top third, grass-color ratio over the bottom third, and
// grayscale brightness variance over the whole frame.
func IsOutdoor(img image.Image, det model.DetectionSet) bool {
	if det.Has(phraseOutdoor, phraseOutside) {
		return true
	}
	if img == nil {
		return false
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return false
	}

	topEnd := b.Min.Y + h/3
	bottomStart := b.Max.Y - h/3

	var skyPixels, topPixels int
	var grassPixels, bottomPixels int
	var sum, sumSq float64
	total := float64(w * h)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r16, g16, b16, _ := img.At(x, y).RGBA()
			r := float64(r16 >> 8)
			g := float64(g16 >> 8)
			bl := float64(b16 >> 8)

			if y < topEnd {
				topPixels++
				// Blue-dominant and not dark.
				if bl > r && bl > g && bl > 100 {
					skyPixels++
				}
			}
			if y >= bottomStart {
				bottomPixels++
				if g > r && g > bl {
					grassPixels++
				}
			}

			gray := 0.299*r + 0.587*g + 0.114*bl
			sum += gray
			sumSq += gray * gray
		}
	}

	skyRatio := 0.0
	if topPixels > 0 {
		skyRatio = float64(skyPixels) / float64(topPixels)
	}
	grassRatio := 0.0
	if bottomPixels > 0 {
		grassRatio = float64(grassPixels) / float64(bottomPixels)
	}
	mean := sum / total
	variance := sumSq/total - mean*mean

	return skyRatio > skyRatioThreshold ||
		grassRatio > grassRatioThreshold ||
		variance > varianceThreshold
}
