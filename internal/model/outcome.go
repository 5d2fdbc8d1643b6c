package model

// AccountUnknown is the sentinel account number used when no parcel could be
// extracted or no lookup row matched.
const AccountUnknown = "UNKNOWN"

// DetectionSet maps a detected object/scene phrase to its confidence score.
// Only entries at or above the detection threshold are retained; it is built
// fresh for every image.
type DetectionSet map[string]float64

// Has reports whether any of the given phrases was detected.
func (d DetectionSet) Has(phrases ...string) bool {
	for _, p := range phrases {
		if _, ok := d[p]; ok {
			return true
		}
	}
	return false
}

// HasAll reports whether every one of the given phrases was detected.
func (d DetectionSet) HasAll(phrases ...string) bool {
	for _, p := range phrases {
		if _, ok := d[p]; !ok {
			return false
		}
	}
	return len(phrases) > 0
}

// ClassificationResult pairs the final label with the layer/rule that
// produced it, e.g. "hard:bathroom", "heuristic:kitchen", "fallback",
// "default".
type ClassificationResult struct {
	Label      Label  `json:"label"`
	Provenance string `json:"provenance"`
}

// FileResult records a single renamed image within a folder run.
type FileResult struct {
	OriginalFile string `json:"original_file"`
	NewFilename  string `json:"new_filename"`
	Label        Label  `json:"classification"`
	SavedPath    string `json:"saved_path"`
}

// ProcessingOutcome is the aggregate record of one folder run.
type ProcessingOutcome struct {
	AccountNo      string       `json:"account_no"`
	ParcelNo       string       `json:"parcel_no,omitempty"`
	ProcessedCount int          `json:"processed_count"`
	Errors         []string     `json:"errors"`
	SkippedFiles   []string     `json:"skipped_files"`
	Results        []FileResult `json:"results"`
}
