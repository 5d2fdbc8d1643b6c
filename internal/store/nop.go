package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sells-group/mls-photo-cli/internal/model"
)

// NopStore satisfies Store without persisting anything. It is used when
// run tracking is disabled (store.driver = none).
type NopStore struct{}

func NewNop() *NopStore { return &NopStore{} }

func (NopStore) CreateRun(_ context.Context, job model.FolderJob) (*model.Run, error) {
	now := time.Now().UTC()
	return &model.Run{
		ID:        uuid.New().String(),
		Job:       job,
		Status:    model.RunStatusQueued,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (NopStore) UpdateRunStatus(context.Context, string, model.RunStatus) error { return nil }

func (NopStore) CompleteRun(context.Context, string, *model.ProcessingOutcome) error { return nil }

func (NopStore) FailRun(context.Context, string, string) error { return nil }

func (NopStore) GetRun(context.Context, string) (*model.Run, error) {
	return nil, ErrRunTrackingDisabled
}

func (NopStore) ListRuns(context.Context, RunFilter) ([]model.Run, error) { return nil, nil }

func (NopStore) Migrate(context.Context) error { return nil }

func (NopStore) Close() error { return nil }
