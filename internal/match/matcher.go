// Package match resolves parcel numbers to account numbers from a
// CSV- or XLSX-backed lookup table.
package match

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Required lookup table columns.
const (
	colAccount = "ACCOUNTNO"
	colParcel  = "PARCELNO"
)

// Matcher holds the normalized parcel → account mapping, loaded once at
// startup.
type Matcher struct {
	tablePath string
	parcels   map[string]string
}

// CandidatePaths returns the lookup table locations in priority order:
// a fresh download in ~/Downloads, a user override under ~/Documents, then
// the configured default. The first existing file wins.
func CandidatePaths(defaultPath string) []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, "Downloads", "Accounts and Parcel Numbers - Sheet1.csv"),
			filepath.Join(home, "Documents", "MLS_Photo_Processor", "Accounts_and_Parcel_Numbers.csv"),
		)
	}
	if defaultPath != "" {
		paths = append(paths, defaultPath)
	}
	return paths
}

// NewFromCandidates loads the first existing candidate table.
func NewFromCandidates(defaultPath string) (*Matcher, error) {
	for _, p := range CandidatePaths(defaultPath) {
		if _, err := os.Stat(p); err == nil {
			return New(p)
		}
	}
	return nil, eris.Errorf("match: no lookup table found (default %q)", defaultPath)
}

// New loads a lookup table from an explicit path. The format is chosen by
// extension: .xlsx opens the first sheet, anything else is parsed as CSV.
func New(path string) (*Matcher, error) {
	var (
		rows [][]string
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		rows, err = readXLSX(path)
	} else {
		rows, err = readCSV(path)
	}
	if err != nil {
		return nil, err
	}

	m := &Matcher{tablePath: path, parcels: make(map[string]string)}
	if err := m.index(rows); err != nil {
		return nil, err
	}

	zap.L().Info("match: lookup table loaded",
		zap.String("path", path),
		zap.Int("parcels", len(m.parcels)),
	)
	return m, nil
}

// TablePath reports which candidate table was loaded.
func (m *Matcher) TablePath() string { return m.tablePath }

// Len reports the number of indexed parcel keys.
func (m *Matcher) Len() int { return len(m.parcels) }

// index builds the normalized parcel map from header + data rows.
func (m *Matcher) index(rows [][]string) error {
	if len(rows) == 0 {
		return eris.Errorf("match: empty lookup table %s", m.tablePath)
	}

	accountIdx, parcelIdx := -1, -1
	for i, h := range rows[0] {
		switch strings.ToUpper(strings.TrimSpace(h)) {
		case colAccount:
			accountIdx = i
		case colParcel:
			parcelIdx = i
		}
	}
	if accountIdx < 0 || parcelIdx < 0 {
		return eris.Errorf("match: lookup table %s missing required columns %s, %s",
			m.tablePath, colAccount, colParcel)
	}

	for _, row := range rows[1:] {
		if parcelIdx >= len(row) || accountIdx >= len(row) {
			continue
		}
		account := strings.TrimSpace(row[accountIdx])
		rawParcel := repairNumericArtifact(strings.TrimSpace(row[parcelIdx]))

		if account == "" || rawParcel == "" ||
			strings.EqualFold(account, "nan") || strings.EqualFold(rawParcel, "nan") {
			continue
		}

		if key := Normalize(rawParcel); key != "" {
			m.parcels[key] = account
		}
	}
	return nil
}

// Normalize prepares a parcel number for matching: trim, upper-case, and
// strip dash/underscore/space separators.
func Normalize(parcel string) string {
	n := strings.ToUpper(strings.TrimSpace(parcel))
	n = strings.ReplaceAll(n, "-", "")
	n = strings.ReplaceAll(n, "_", "")
	n = strings.ReplaceAll(n, " ", "")
	return n
}

// repairNumericArtifact undoes spreadsheet float formatting of parcel
// numbers: "317703000043.0" and "3.17703000043E+11" both become
// "317703000043". Non-numeric values pass through untouched.
func repairNumericArtifact(s string) string {
	lower := strings.ToLower(s)
	if strings.Contains(lower, "e+") || strings.Contains(lower, "e-") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return strconv.FormatFloat(f, 'f', 0, 64)
		}
		return s
	}
	if strings.HasSuffix(s, ".0") {
		return strings.TrimSuffix(s, ".0")
	}
	return s
}

// Match resolves a parcel number to an account number. Matching is
// leading-zero insensitive in both directions: an exact normalized match is
// tried first, then the zero-stripped input against stored keys, then a
// linear scan comparing zero-stripped stored keys against the input. When
// several stored keys reduce to the same zero-stripped value the first one
// encountered during iteration wins.
func (m *Matcher) Match(parcel string) (string, bool) {
	normalized := Normalize(parcel)
	if normalized == "" {
		return "", false
	}

	if account, ok := m.parcels[normalized]; ok {
		return account, true
	}

	noZeros := strings.TrimLeft(normalized, "0")
	if noZeros != "" {
		if account, ok := m.parcels[noZeros]; ok {
			return account, true
		}
	}

	for stored, account := range m.parcels {
		if strings.TrimLeft(stored, "0") == noZeros || stored == normalized {
			return account, true
		}
	}

	return "", false
}
