package model

import "time"

// RunStatus represents the current state of a folder-processing run.
type RunStatus string

const (
	RunStatusQueued     RunStatus = "queued"
	RunStatusProcessing RunStatus = "processing"
	RunStatusComplete   RunStatus = "complete"
	RunStatusFailed     RunStatus = "failed"
)

// FolderJob identifies the source folder and output directory of a run.
type FolderJob struct {
	SourceDir string `json:"source_dir"`
	OutputDir string `json:"output_dir"`
}

// Run is one recorded folder-processing invocation.
type Run struct {
	ID        string             `json:"id"`
	Job       FolderJob          `json:"job"`
	Status    RunStatus          `json:"status"`
	Outcome   *ProcessingOutcome `json:"outcome,omitempty"`
	Error     string             `json:"error,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}
