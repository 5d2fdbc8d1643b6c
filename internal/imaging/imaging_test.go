package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 60, B: 40, A: 255})
		}
	}
	return img
}

func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func writeJPEG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, jpeg.Encode(f, img, nil))
	require.NoError(t, f.Close())
	return path
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("a.jpg"))
	assert.True(t, IsSupported("a.JPEG"))
	assert.True(t, IsSupported("a.jfif"))
	assert.True(t, IsSupported("a.PNG"))
	assert.True(t, IsSupported("a.webp"))
	assert.False(t, IsSupported("a.gif"))
	assert.False(t, IsSupported("a.pdf"))
	assert.False(t, IsSupported("a"))
}

func TestIsJPEG(t *testing.T) {
	assert.True(t, IsJPEG("a.jpg"))
	assert.True(t, IsJPEG("a.JFIF"))
	assert.False(t, IsJPEG("a.png"))
	assert.False(t, IsJPEG("a.webp"))
}

func TestLoadAndValidate(t *testing.T) {
	dir := t.TempDir()

	pngPath := writePNG(t, dir, "ok.png", testImage())
	img, err := Load(pngPath)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())
	assert.True(t, Validate(pngPath))

	jpgPath := writeJPEG(t, dir, "ok.jpg", testImage())
	assert.True(t, Validate(jpgPath))

	badPath := filepath.Join(dir, "bad.jpg")
	require.NoError(t, os.WriteFile(badPath, []byte("not an image"), 0o644))
	assert.False(t, Validate(badPath))

	assert.False(t, Validate(filepath.Join(dir, "missing.jpg")))
}

func TestFlattenTransparency(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	// Fully transparent pixels should come out white.
	flat := Flatten(img)

	r, g, b, _ := flat.At(1, 1).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), g)
	assert.Equal(t, uint32(0xffff), b)
}

func TestEncodeJPEGDecodable(t *testing.T) {
	data, err := EncodeJPEG(testImage())
	require.NoError(t, err)

	decoded, format, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 8, decoded.Bounds().Dx())
}

func TestConvertToJPEG(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()

	src := writePNG(t, srcDir, "deck photo.png", testImage())

	out, err := ConvertToJPEG(src, dstDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dstDir, "deck photo.JPG"), out)
	assert.True(t, Validate(out))

	// Second conversion of the same name picks up a collision suffix.
	out2, err := ConvertToJPEG(src, dstDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dstDir, "deck photo_1.JPG"), out2)
}

func TestConvertToJPEGDecodeFailure(t *testing.T) {
	srcDir := t.TempDir()
	bad := filepath.Join(srcDir, "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("junk"), 0o644))

	_, err := ConvertToJPEG(bad, t.TempDir())
	assert.Error(t, err)
}
