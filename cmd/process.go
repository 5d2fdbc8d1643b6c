package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/mls-photo-cli/internal/model"
)

var (
	processSource string
	processOutput string
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process a single listing photo folder",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return cfg.Validate("process")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		e, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		job := model.FolderJob{SourceDir: processSource, OutputDir: processOutput}
		run, err := e.Store.CreateRun(ctx, job)
		if err != nil {
			return eris.Wrap(err, "create run")
		}
		if err := e.Store.UpdateRunStatus(ctx, run.ID, model.RunStatusProcessing); err != nil {
			return err
		}

		outcome, err := e.Processor.Process(ctx, job.SourceDir, job.OutputDir)
		if err != nil {
			if fErr := e.Store.FailRun(ctx, run.ID, err.Error()); fErr != nil {
				zap.L().Warn("failed to record run failure", zap.Error(fErr))
			}
			return eris.Wrap(err, "process folder")
		}

		if err := e.Store.CompleteRun(ctx, run.ID, outcome); err != nil {
			zap.L().Warn("failed to record run completion", zap.Error(err))
		}

		zap.L().Info("folder processed",
			zap.String("source", job.SourceDir),
			zap.String("account", outcome.AccountNo),
			zap.Int("processed", outcome.ProcessedCount),
			zap.Int("errors", len(outcome.Errors)),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(outcome)
	},
}

func init() {
	processCmd.Flags().StringVar(&processSource, "source", "", "folder of listing photos (required)")
	processCmd.Flags().StringVar(&processOutput, "output", "", "output folder for renamed copies (required)")
	_ = processCmd.MarkFlagRequired("source")
	_ = processCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(processCmd)
}
