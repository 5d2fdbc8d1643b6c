package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/mls-photo-cli/internal/model"
	"github.com/sells-group/mls-photo-cli/internal/pipeline"
	"github.com/sells-group/mls-photo-cli/internal/store"
)

var (
	batchRoot        string
	batchOutput      string
	batchConcurrency int
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Process every listing folder under a root directory",
	Long:  "Each immediate subfolder of --root is processed as its own listing; renamed copies land in a per-listing subfolder of --output.",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return cfg.Validate("batch")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		e, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		concurrency := batchConcurrency
		if concurrency <= 0 {
			concurrency = 1
		}

		return processFolders(ctx, e.Store, e.Processor, batchRoot, batchOutput, concurrency)
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchRoot, "root", "", "directory containing one subfolder per listing (required)")
	batchCmd.Flags().StringVar(&batchOutput, "output", "", "root directory for per-listing output folders (required)")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 1, "folders processed in parallel")
	_ = batchCmd.MarkFlagRequired("root")
	_ = batchCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(batchCmd)
}

// folderProcessor is the slice of the pipeline the batch loop needs.
type folderProcessor interface {
	Process(ctx context.Context, sourceDir, outputDir string) (*model.ProcessingOutcome, error)
}

var _ folderProcessor = (*pipeline.Processor)(nil)

// processFolders runs every immediate subfolder of root through the pipeline.
// Individual folder failures are recorded and do not abort the batch.
func processFolders(ctx context.Context, st store.Store, proc folderProcessor, root, output string, concurrency int) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		return eris.Wrapf(err, "read batch root %s", root)
	}

	var folders []string
	for _, entry := range entries {
		if entry.IsDir() {
			folders = append(folders, entry.Name())
		}
	}
	if len(folders) == 0 {
		zap.L().Info("no listing folders found", zap.String("root", root))
		return nil
	}

	zap.L().Info("processing batch",
		zap.Int("folders", len(folders)),
		zap.Int("concurrency", concurrency),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var succeeded, failed atomic.Int64

	for _, name := range folders {
		job := model.FolderJob{
			SourceDir: filepath.Join(root, name),
			OutputDir: filepath.Join(output, name),
		}
		g.Go(func() error {
			log := zap.L().With(zap.String("folder", job.SourceDir))

			run, err := st.CreateRun(gctx, job)
			if err != nil {
				return eris.Wrap(err, "create run")
			}
			if err := st.UpdateRunStatus(gctx, run.ID, model.RunStatusProcessing); err != nil {
				return err
			}

			outcome, err := proc.Process(gctx, job.SourceDir, job.OutputDir)
			if err != nil {
				failed.Add(1)
				log.Error("folder failed", zap.Error(err))
				if fErr := st.FailRun(gctx, run.ID, err.Error()); fErr != nil {
					log.Warn("failed to record run failure", zap.Error(fErr))
				}
				return nil // don't abort the batch on individual failure
			}

			succeeded.Add(1)
			if err := st.CompleteRun(gctx, run.ID, outcome); err != nil {
				log.Warn("failed to record run completion", zap.Error(err))
			}
			log.Info("folder processed",
				zap.String("account", outcome.AccountNo),
				zap.Int("processed", outcome.ProcessedCount),
				zap.Int("errors", len(outcome.Errors)),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	zap.L().Info("batch complete",
		zap.Int64("succeeded", succeeded.Load()),
		zap.Int64("failed", failed.Load()),
	)
	return nil
}
