// Package pipeline orchestrates a single folder run: parcel extraction,
// account lookup, PDF handling, image normalization, classification,
// grouping, and renaming into the output folder.
package pipeline

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/mls-photo-cli/internal/imaging"
	"github.com/sells-group/mls-photo-cli/internal/model"
	"github.com/sells-group/mls-photo-cli/internal/naming"
	"github.com/sells-group/mls-photo-cli/internal/parcel"
)

// Classifier produces one canonical label per photo. The rule cascade
// implements it; tests inject deterministic stubs.
type Classifier interface {
	Classify(ctx context.Context, img image.Image, imageJPEG []byte) model.ClassificationResult
}

// AccountResolver maps a parcel number to an account number.
type AccountResolver interface {
	Match(parcel string) (string, bool)
}

// Processor runs folder invocations. It holds no per-run state; a single
// Processor may serve many sequential runs.
type Processor struct {
	resolver   AccountResolver
	classifier Classifier
}

// New builds a Processor from its injected collaborators.
func New(resolver AccountResolver, classifier Classifier) *Processor {
	return &Processor{resolver: resolver, classifier: classifier}
}

// item tracks one source image through the run.
type item struct {
	originalName string
	copyFrom     string // normalized JPEG to rename (source file or converted temp)
	converted    bool
	img          image.Image
	label        model.Label
}

// Process executes the full folder sequence and returns the aggregate
// outcome. Per-file failures are recorded on the outcome and never abort
// the run; the only fatal condition inside the sequence is ending up with
// zero valid images, which short-circuits with a zero processed count.
func (p *Processor) Process(ctx context.Context, sourceDir, outputDir string) (*model.ProcessingOutcome, error) {
	log := zap.L().With(zap.String("source", sourceDir), zap.String("output", outputDir))

	outcome := &model.ProcessingOutcome{
		AccountNo:    model.AccountUnknown,
		Errors:       []string{},
		SkippedFiles: []string{},
		Results:      []model.FileResult{},
	}

	if err := naming.EnsureOutputDir(outputDir); err != nil {
		return nil, err
	}

	// Step 1: parcel number from the folder's own name.
	folderName := filepath.Base(filepath.Clean(sourceDir))
	parcelNo, ok := parcel.Extract(folderName)
	if !ok {
		outcome.Errors = append(outcome.Errors, "Could not extract parcel number from folder name")
		log.Warn("pipeline: no parcel number in folder name", zap.String("folder", folderName))
	}
	outcome.ParcelNo = parcelNo

	// Step 2: parcel -> account lookup.
	if parcelNo != "" {
		if account, found := p.resolver.Match(parcelNo); found {
			outcome.AccountNo = account
			log.Info("pipeline: matched parcel to account",
				zap.String("parcel", parcelNo),
				zap.String("account", account),
			)
		} else {
			outcome.Errors = append(outcome.Errors,
				fmt.Sprintf("No account match found for parcel: %s", parcelNo))
		}
	}

	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return nil, eris.Wrapf(err, "pipeline: read source folder %s", sourceDir)
	}

	// Step 3: PDFs are renamed to ACCOUNT.PDF only when the account is known.
	p.handlePDFs(entries, sourceDir, outputDir, outcome)

	// Steps 4-5: load, normalize, and validate images.
	items := p.collectImages(entries, sourceDir, outputDir, outcome)
	if len(items) == 0 {
		outcome.Errors = append(outcome.Errors, "No image files found in folder")
		return outcome, nil
	}

	// Step 6: classify serially; classification failures resolve to OTHER
	// inside the cascade and never surface here.
	for i := range items {
		data, readErr := os.ReadFile(items[i].copyFrom)
		if readErr != nil {
			data = nil
		}
		res := p.classifier.Classify(ctx, items[i].img, data)
		items[i].label = res.Label
		log.Debug("pipeline: classified image",
			zap.String("file", items[i].originalName),
			zap.String("label", string(res.Label)),
			zap.String("provenance", res.Provenance),
		)
	}

	// Steps 7-8: group by label, order by original name, rename into place.
	p.renameGrouped(items, outputDir, outcome)

	log.Info("pipeline: processing complete",
		zap.String("account", outcome.AccountNo),
		zap.Int("processed", outcome.ProcessedCount),
		zap.Int("errors", len(outcome.Errors)),
		zap.Int("skipped", len(outcome.SkippedFiles)),
	)
	return outcome, nil
}

func (p *Processor) handlePDFs(entries []os.DirEntry, sourceDir, outputDir string, outcome *model.ProcessingOutcome) {
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}
		if outcome.AccountNo == model.AccountUnknown {
			outcome.SkippedFiles = append(outcome.SkippedFiles, e.Name())
			continue
		}
		src := filepath.Join(sourceDir, e.Name())
		if _, err := naming.CopyFile(src, outputDir, naming.PDFFilename(outcome.AccountNo)); err != nil {
			outcome.Errors = append(outcome.Errors, fmt.Sprintf("Failed to rename PDF: %s", e.Name()))
			zap.L().Warn("pipeline: pdf copy failed", zap.String("file", e.Name()), zap.Error(err))
		}
	}
}

// collectImages loads every supported image, converting non-JPEG sources to
// a normalized baseline JPEG in the output folder. Decode and conversion
// failures are skipped.
func (p *Processor) collectImages(entries []os.DirEntry, sourceDir, outputDir string, outcome *model.ProcessingOutcome) []item {
	var items []item

	for _, e := range entries {
		if e.IsDir() || !imaging.IsSupported(e.Name()) {
			continue
		}
		src := filepath.Join(sourceDir, e.Name())

		img, err := imaging.Load(src)
		if err != nil {
			outcome.SkippedFiles = append(outcome.SkippedFiles, e.Name())
			outcome.Errors = append(outcome.Errors, fmt.Sprintf("Failed to load image: %s", e.Name()))
			zap.L().Warn("pipeline: image load failed", zap.String("file", e.Name()), zap.Error(err))
			continue
		}

		it := item{originalName: e.Name(), copyFrom: src, img: img}
		if !imaging.IsJPEG(e.Name()) {
			converted, convErr := imaging.ConvertToJPEG(src, outputDir)
			if convErr != nil {
				outcome.SkippedFiles = append(outcome.SkippedFiles, e.Name())
				outcome.Errors = append(outcome.Errors, fmt.Sprintf("Failed to convert image: %s", e.Name()))
				zap.L().Warn("pipeline: jpeg conversion failed", zap.String("file", e.Name()), zap.Error(convErr))
				continue
			}
			it.copyFrom = converted
			it.converted = true
		}

		// Second validation pass over the file that will be renamed.
		if !imaging.Validate(it.copyFrom) {
			outcome.SkippedFiles = append(outcome.SkippedFiles, e.Name())
			continue
		}

		items = append(items, it)
	}
	return items
}

// renameGrouped assigns 1-based per-label indices ordered by original
// filename and writes each image under its convention name. Converted
// temporaries are moved rather than copied so no intermediates remain.
func (p *Processor) renameGrouped(items []item, outputDir string, outcome *model.ProcessingOutcome) {
	groups := make(map[model.Label][]item)
	for _, it := range items {
		groups[it.label] = append(groups[it.label], it)
	}

	for label, group := range groups {
		sort.Slice(group, func(i, j int) bool {
			return group[i].originalName < group[j].originalName
		})

		for i, it := range group {
			filename := naming.Filename(outcome.AccountNo, string(label), i+1)

			var (
				saved string
				err   error
			)
			if it.converted {
				saved = naming.UniquePath(outputDir, filename)
				err = os.Rename(it.copyFrom, saved)
			} else {
				saved, err = naming.CopyFile(it.copyFrom, outputDir, filename)
			}
			if err != nil {
				outcome.Errors = append(outcome.Errors, fmt.Sprintf("Failed to copy image: %s", it.originalName))
				zap.L().Warn("pipeline: rename failed", zap.String("file", it.originalName), zap.Error(err))
				continue
			}

			outcome.ProcessedCount++
			outcome.Results = append(outcome.Results, model.FileResult{
				OriginalFile: it.originalName,
				NewFilename:  filepath.Base(saved),
				Label:        label,
				SavedPath:    saved,
			})
		}
	}
}
