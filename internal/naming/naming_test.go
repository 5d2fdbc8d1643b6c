package naming

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		name    string
		account string
		label   string
		index   int
		want    string
	}{
		{"normalizes case and spacing", "123", "kitchen ", 2, "123 - MLS - KITCHEN 2.JPG"},
		{"upper account", "ab100", "BATHROOM", 1, "AB100 - MLS - BATHROOM 1.JPG"},
		{"unknown label coerced", "AB100", "garage", 3, "AB100 - MLS - OTHER 3.JPG"},
		{"two word label", "AB100", "laundry room", 1, "AB100 - MLS - LAUNDRY ROOM 1.JPG"},
		{"index not padded", "AB100", "DECK", 12, "AB100 - MLS - DECK 12.JPG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Filename(tt.account, tt.label, tt.index))
		})
	}
}

func TestPDFFilename(t *testing.T) {
	assert.Equal(t, "AB100.PDF", PDFFilename(" ab100 "))
}

func TestUniquePath(t *testing.T) {
	dir := t.TempDir()

	p1 := UniquePath(dir, "name.JPG")
	assert.Equal(t, filepath.Join(dir, "name.JPG"), p1)
	require.NoError(t, os.WriteFile(p1, []byte("x"), 0o644))

	p2 := UniquePath(dir, "name.JPG")
	assert.Equal(t, filepath.Join(dir, "name_1.JPG"), p2)
	require.NoError(t, os.WriteFile(p2, []byte("x"), 0o644))

	p3 := UniquePath(dir, "name.JPG")
	assert.Equal(t, filepath.Join(dir, "name_2.JPG"), p3)
}

func TestCopyFileCollisions(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()

	src := filepath.Join(srcDir, "photo.jpg")
	require.NoError(t, os.WriteFile(src, []byte("image-bytes"), 0o644))

	first, err := CopyFile(src, dstDir, "AB100 - MLS - BATHROOM 1.JPG")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dstDir, "AB100 - MLS - BATHROOM 1.JPG"), first)

	second, err := CopyFile(src, dstDir, "AB100 - MLS - BATHROOM 1.JPG")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dstDir, "AB100 - MLS - BATHROOM 1_1.JPG"), second)

	data, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))
}

func TestCopyFileMissingSource(t *testing.T) {
	_, err := CopyFile(filepath.Join(t.TempDir(), "missing.jpg"), t.TempDir(), "out.JPG")
	assert.Error(t, err)
}

func TestEnsureOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	require.NoError(t, EnsureOutputDir(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Probe file is removed.
	_, err = os.Stat(filepath.Join(dir, ".write_test"))
	assert.True(t, os.IsNotExist(err))
}
