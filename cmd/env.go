package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/mls-photo-cli/internal/classify"
	"github.com/sells-group/mls-photo-cli/internal/match"
	"github.com/sells-group/mls-photo-cli/internal/pipeline"
	"github.com/sells-group/mls-photo-cli/internal/store"
	"github.com/sells-group/mls-photo-cli/pkg/claude"
	"github.com/sells-group/mls-photo-cli/pkg/gemini"
	"github.com/sells-group/mls-photo-cli/pkg/gvision"
)

// env bundles the wired pipeline and its run store for command handlers.
type env struct {
	Store     store.Store
	Processor *pipeline.Processor
	closers   []func() error
}

// Close releases model clients and the store.
func (e *env) Close() {
	for _, c := range e.closers {
		_ = c()
	}
	_ = e.Store.Close()
}

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		return store.NewSQLite(cfg.Store.SQLitePath)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	case "none":
		return store.NewNop(), nil
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// initScorer builds the configured vision backend. The returned cleanup may
// be nil.
func initScorer(ctx context.Context) (classify.Scorer, func() error, error) {
	switch cfg.Model.Provider {
	case "gemini":
		s, err := gemini.New(ctx, cfg.Gemini.Key, cfg.Gemini.Model)
		if err != nil {
			return nil, nil, err
		}
		return s, nil, nil
	case "vision":
		s, err := gvision.New(ctx, cfg.Vision.CredentialsFile)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case "claude":
		return claude.NewScorer(claude.NewClient(cfg.Claude.Key), cfg.Claude.Model), nil, nil
	case "none":
		return classify.NopScorer(), nil, nil
	default:
		return nil, nil, eris.Errorf("unsupported model provider: %s", cfg.Model.Provider)
	}
}

// initEnv wires the store, lookup table, vision backend, and processor.
func initEnv(ctx context.Context) (*env, error) {
	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	matcher, err := match.NewFromCandidates(cfg.Lookup.TablePath)
	if err != nil {
		st.Close()
		return nil, err
	}
	zap.L().Info("lookup table loaded",
		zap.String("path", matcher.TablePath()),
		zap.Int("parcels", matcher.Len()),
	)

	scorer, cleanup, err := initScorer(ctx)
	if err != nil {
		st.Close()
		return nil, err
	}
	scorer = classify.LimitScorer(scorer, cfg.Model.RequestsPerSec)

	e := &env{
		Store:     st,
		Processor: pipeline.New(matcher, classify.NewCascade(scorer)),
	}
	if cleanup != nil {
		e.closers = append(e.closers, cleanup)
	}
	return e, nil
}
