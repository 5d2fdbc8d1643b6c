// Package naming generates output filenames under the fixed
// "ACCOUNT - MLS - LABEL N.JPG" convention and performs collision-safe
// copies into the output folder.
package naming

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/mls-photo-cli/internal/model"
)

// Filename builds the renamed image filename. Account and label are
// upper-cased and trimmed; a label outside the canonical set becomes OTHER.
// The index is 1-based and not zero-padded.
func Filename(account, label string, index int) string {
	acct := strings.ToUpper(strings.TrimSpace(account))
	lbl := model.Canonicalize(label)
	return fmt.Sprintf("%s - MLS - %s %d.JPG", acct, lbl, index)
}

// PDFFilename builds the renamed PDF filename for a known account.
func PDFFilename(account string) string {
	return fmt.Sprintf("%s.PDF", strings.ToUpper(strings.TrimSpace(account)))
}

// UniquePath resolves filename inside dir, appending _1, _2, ... before the
// extension until the path does not exist.
func UniquePath(dir, filename string) string {
	base := filename
	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(base, ext)

	path := filepath.Join(dir, base)
	for n := 1; ; n++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path
		}
		path = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, n, ext))
	}
}

// CopyFile copies src into dir under filename, applying the collision
// policy. Returns the final destination path.
func CopyFile(src, dir, filename string) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", eris.Wrapf(err, "naming: open %s", src)
	}
	defer in.Close() //nolint:errcheck

	dst := UniquePath(dir, filename)
	out, err := os.Create(dst)
	if err != nil {
		return "", eris.Wrapf(err, "naming: create %s", dst)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return "", eris.Wrapf(err, "naming: copy to %s", dst)
	}
	if err := out.Close(); err != nil {
		return "", eris.Wrapf(err, "naming: close %s", dst)
	}
	return dst, nil
}

// EnsureOutputDir creates dir if absent and validates writability with a
// probe file.
func EnsureOutputDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrapf(err, "naming: create output dir %s", dir)
	}

	probe := filepath.Join(dir, ".write_test")
	f, err := os.Create(probe)
	if err != nil {
		return eris.Wrapf(err, "naming: output dir not writable: %s", dir)
	}
	f.Close() //nolint:errcheck
	_ = os.Remove(probe)
	return nil
}
