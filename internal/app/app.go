package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/image/font/opentype"

	"github.com/ha1tch/vowelchart/internal/config"
	"github.com/ha1tch/vowelchart/internal/dataset"
	"github.com/ha1tch/vowelchart/internal/transport/middleware"
	"github.com/ha1tch/vowelchart/internal/transport/rest"
	"github.com/ha1tch/vowelchart/pkg/chart"
	"github.com/ha1tch/vowelchart/pkg/vowel"
)

// LoadChart loads the dataset (embedded when dataPath is empty) and builds
// a resolver over the default diagram. Sheet overrides from sheetPath are
// merged over the default sheet.
func LoadChart(dataPath, sheetPath string) (*vowel.Dataset, *chart.Resolver, error) {
	ds, err := dataset.Load(dataPath)
	if err != nil {
		return nil, nil, err
	}
	sheet, err := LoadSheet(sheetPath)
	if err != nil {
		return nil, nil, err
	}
	return ds, chart.NewResolver(chart.DefaultDiagram(), sheet), nil
}

// LoadSheet returns the default sheet with the overrides in path merged
// over it. An empty path returns the default sheet.
func LoadSheet(path string) (chart.Sheet, error) {
	sheet := chart.DefaultSheet()
	if path == "" {
		return sheet, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("app: open sheet: %w", err)
	}
	defer f.Close()
	overrides, err := chart.LoadSheetYAML(f)
	if err != nil {
		return nil, fmt.Errorf("app: sheet %s: %w", path, err)
	}
	return sheet.Merge(overrides), nil
}

// LoadFont parses the label font at path. An empty path returns nil, which
// renderers read as the embedded default.
func LoadFont(path string) (*opentype.Font, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("app: read font: %w", err)
	}
	f, err := chart.ParseFont(data)
	if err != nil {
		return nil, fmt.Errorf("app: font %s: %w", path, err)
	}
	return f, nil
}

// NewHandler wires the REST handlers and middleware chain.
func NewHandler(cfg *config.Config, ds *vowel.Dataset, resolver *chart.Resolver, labelFont *opentype.Font, logger *slog.Logger) http.Handler {
	var clips *rest.AudioHandler
	if cfg.Audio.ClipDir != "" {
		clips = rest.NewAudioHandler(cfg.Audio.ClipDir, logger)
	}
	mux := rest.NewRouter(
		rest.NewHealthHandler(BuildVersion(), ds.Len()),
		rest.NewChartHandler(ds, resolver, cfg.Chart, labelFont, cfg.Audio.BaseURL, logger),
		clips,
	)
	return middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
	)(mux)
}

// Run is the server entry point. It loads configuration and the dataset,
// serves HTTP until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting vowelchart server",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	ds, resolver, err := LoadChart(cfg.Dataset.Path, cfg.Chart.SheetPath)
	if err != nil {
		return err
	}
	labelFont, err := LoadFont(cfg.Chart.FontPath)
	if err != nil {
		return err
	}
	for _, issue := range ds.Validate() {
		logger.Warn("dataset issue", slog.String("issue", issue.String()))
	}
	logger.Info("dataset loaded",
		slog.Int("phonemes", ds.Len()),
		slog.Int("glides", len(ds.Diphthongs())),
	)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      NewHandler(cfg, ds, resolver, labelFont, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("app: serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("app: shutdown: %w", err)
	}
	return nil
}
