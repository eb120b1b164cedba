package daemon

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/moodmap/moodmap/internal/api"
	"github.com/moodmap/moodmap/internal/app/classifier"
	"github.com/moodmap/moodmap/internal/app/journal"
	"github.com/moodmap/moodmap/internal/domain"
	"github.com/moodmap/moodmap/internal/infra/memstore"
	"github.com/moodmap/moodmap/internal/infra/sentiment"
	"github.com/moodmap/moodmap/internal/infra/sqlite"
	"github.com/moodmap/moodmap/internal/logging"
)

// Daemon holds the assembled service.
type Daemon struct {
	Config  Config
	Journal *journal.Journal
	Log     logging.Logger

	closeStore func() error
}

// New opens the configured store, builds the scorer, loads the journal and
// applies the configured location permission.
func New(ctx context.Context, cfg Config, dataDir string, log logging.Logger) (*Daemon, error) {
	if log == nil {
		log = logging.Discard()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store, closeStore, err := openStore(cfg, dataDir)
	if err != nil {
		return nil, err
	}

	scorer, err := newScorer(cfg.Sentiment, log)
	if err != nil {
		closeStore()
		return nil, err
	}

	j := journal.New(store, classifier.New(scorer), journal.WithLogger(log.With("component", "journal")))
	if err := j.Load(ctx); err != nil {
		closeStore()
		return nil, err
	}

	perm, _ := domain.ParsePermissionState(cfg.Location.Permission)
	if err := j.InitPermission(ctx, perm); err != nil {
		closeStore()
		return nil, fmt.Errorf("apply location permission: %w", err)
	}

	log.Info(ctx, "moodmap ready",
		"storage", cfg.Storage.Driver, "scorer", cfg.Sentiment.Provider,
		"records", len(j.Records()), "permission", perm)
	return &Daemon{Config: cfg, Journal: j, Log: log, closeStore: closeStore}, nil
}

// Close releases the store.
func (d *Daemon) Close() error {
	if d.closeStore == nil {
		return nil
	}
	return d.closeStore()
}

// Serve runs the HTTP API until ctx is cancelled, then shuts down gracefully.
func (d *Daemon) Serve(ctx context.Context) error {
	srv := api.NewServer(d.Journal, d.Log.With("component", "api"))
	if d.Config.API.Metrics {
		srv.EnableMetrics()
	}

	httpSrv := &http.Server{
		Addr:              d.Config.API.Addr(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		d.Log.Info(ctx, "http server listening", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	d.Log.Info(shutdownCtx, "shutting down")
	return httpSrv.Shutdown(shutdownCtx)
}

func openStore(cfg Config, dataDir string) (domain.JournalStore, func() error, error) {
	switch cfg.Storage.Driver {
	case "memory":
		return memstore.New(), func() error { return nil }, nil
	default:
		db, err := sqlite.Open(cfg.StorageDir(dataDir))
		if err != nil {
			return nil, nil, fmt.Errorf("%w: open store: %w", domain.ErrPersistence, err)
		}
		return db, db.Close, nil
	}
}

func newScorer(cfg SentimentConfig, log logging.Logger) (domain.SentimentScorer, error) {
	switch cfg.Provider {
	case "openai":
		timeout, err := time.ParseDuration(cfg.Timeout)
		if cfg.Timeout != "" && err != nil {
			return nil, fmt.Errorf("sentiment.timeout: %w", err)
		}
		return sentiment.NewOpenAI(sentiment.OpenAIConfig{
			APIKey:  os.Getenv(cfg.APIKeyEnv),
			Model:   cfg.Model,
			Timeout: timeout,
		}, log.With("component", "scorer"))
	default:
		return sentiment.NewLexicon(), nil
	}
}
