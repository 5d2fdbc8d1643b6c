// Package imaging loads, validates, and normalizes listing photos. JPEG,
// PNG, and WebP are decoded; everything is written back out as baseline
// JPEG with transparency flattened onto white and metadata dropped.
package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	_ "golang.org/x/image/webp"

	"github.com/sells-group/mls-photo-cli/internal/naming"
)

// jpegQuality matches the original processing tool's output quality.
const jpegQuality = 95

// supportedExts are the accepted input extensions (case-insensitive).
// Anything else in the source folder is ignored.
var supportedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".jfif": true,
	".png":  true,
	".webp": true,
}

// IsSupported reports whether the filename carries a supported image
// extension.
func IsSupported(name string) bool {
	return supportedExts[strings.ToLower(filepath.Ext(name))]
}

// IsJPEG reports whether the filename is already JPEG-encoded (.jfif is the
// same container).
func IsJPEG(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".jfif":
		return true
	}
	return false
}

// Load decodes the image at path.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "imaging: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, eris.Wrapf(err, "imaging: decode %s", path)
	}
	return img, nil
}

// Validate reports whether path holds a genuinely decodable image.
// Intentionally permissive: if it decodes, it is valid.
func Validate(path string) bool {
	_, err := Load(path)
	return err == nil
}

// Flatten composites the image onto a white background, discarding any
// alpha channel or palette.
func Flatten(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(out, b, img, b.Min, draw.Over)
	return out
}

// EncodeJPEG renders the image as baseline JPEG bytes. Re-encoding drops
// any source metadata.
func EncodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, Flatten(img), &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, eris.Wrap(err, "imaging: encode jpeg")
	}
	return buf.Bytes(), nil
}

// ConvertToJPEG decodes the source image and writes it as a baseline JPEG
// into dstDir under the source's base name with a .JPG extension, applying
// the collision policy. Returns the written path.
func ConvertToJPEG(srcPath, dstDir string) (string, error) {
	img, err := Load(srcPath)
	if err != nil {
		return "", err
	}

	data, err := EncodeJPEG(img)
	if err != nil {
		return "", err
	}

	stem := strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))
	dst := naming.UniquePath(dstDir, stem+".JPG")
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", eris.Wrapf(err, "imaging: write %s", dst)
	}
	return dst, nil
}
