package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/mls-photo-cli/internal/model"
	"github.com/sells-group/mls-photo-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve folder-processing requests over HTTP",
	Long:  "POST /process queues a folder and returns a run ID; poll GET /runs/{id} for the outcome.",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return cfg.Validate("serve")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		e, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(ctx, e.Store, e.Processor),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// newRouter builds the HTTP API. Jobs run in a goroutine scoped to the server
// context; the run store is the only place results land, so handlers share no
// mutable state with workers.
func newRouter(serverCtx context.Context, st store.Store, proc folderProcessor) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/process", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Source string `json:"source"`
			Output string `json:"output"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		if body.Source == "" || body.Output == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "source and output are required"})
			return
		}

		job := model.FolderJob{SourceDir: body.Source, OutputDir: body.Output}
		run, err := st.CreateRun(req.Context(), job)
		if err != nil {
			zap.L().Error("create run failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to queue run"})
			return
		}

		go runJob(serverCtx, st, proc, run.ID, job)

		writeJSON(w, http.StatusAccepted, map[string]string{
			"run_id": run.ID,
			"status": string(model.RunStatusQueued),
		})
	})

	r.Get("/runs", func(w http.ResponseWriter, req *http.Request) {
		filter := store.RunFilter{
			Status: model.RunStatus(req.URL.Query().Get("status")),
		}
		runs, err := st.ListRuns(req.Context(), filter)
		if err != nil {
			zap.L().Error("list runs failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list runs"})
			return
		}
		if runs == nil {
			runs = []model.Run{}
		}
		writeJSON(w, http.StatusOK, runs)
	})

	r.Get("/runs/{id}", func(w http.ResponseWriter, req *http.Request) {
		run, err := st.GetRun(req.Context(), chi.URLParam(req, "id"))
		if err != nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "run not found"})
			return
		}
		writeJSON(w, http.StatusOK, run)
	})

	return r
}

// runJob executes one folder job and records the result.
func runJob(ctx context.Context, st store.Store, proc folderProcessor, runID string, job model.FolderJob) {
	log := zap.L().With(zap.String("run_id", runID), zap.String("folder", job.SourceDir))

	if err := st.UpdateRunStatus(ctx, runID, model.RunStatusProcessing); err != nil {
		log.Warn("failed to mark run processing", zap.Error(err))
	}

	outcome, err := proc.Process(ctx, job.SourceDir, job.OutputDir)
	if err != nil {
		log.Error("run failed", zap.Error(err))
		if fErr := st.FailRun(ctx, runID, err.Error()); fErr != nil {
			log.Warn("failed to record run failure", zap.Error(fErr))
		}
		return
	}

	if err := st.CompleteRun(ctx, runID, outcome); err != nil {
		log.Warn("failed to record run completion", zap.Error(err))
	}
	log.Info("run complete",
		zap.String("account", outcome.AccountNo),
		zap.Int("processed", outcome.ProcessedCount),
	)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
