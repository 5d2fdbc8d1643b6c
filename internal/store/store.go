// Package store persists folder-run history so operators can audit what a
// batch did after the fact. The pipeline itself never reads from it.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/mls-photo-cli/internal/model"
)

// ErrRunTrackingDisabled is returned by lookups when the store driver is
// set to none.
var ErrRunTrackingDisabled = eris.New("run tracking is disabled")

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Status model.RunStatus `json:"status,omitempty"`
	Limit  int             `json:"limit,omitempty"`
	Offset int             `json:"offset,omitempty"`
}

// Store defines the run-history persistence interface.
type Store interface {
	CreateRun(ctx context.Context, job model.FolderJob) (*model.Run, error)
	UpdateRunStatus(ctx context.Context, runID string, status model.RunStatus) error
	CompleteRun(ctx context.Context, runID string, outcome *model.ProcessingOutcome) error
	FailRun(ctx context.Context, runID string, message string) error
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error)

	Migrate(ctx context.Context) error
	Close() error
}
