package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/idelchi/dirrank/internal/config"
	"github.com/idelchi/dirrank/internal/dirrank"
	"github.com/idelchi/dirrank/internal/report"
	"github.com/idelchi/dirrank/internal/volume"
)

// options carries everything a single run needs after flag parsing.
type options struct {
	Root     string
	Output   string
	NoExport bool
	Config   *config.Config
	Logger   *zap.Logger
	Stdout   io.Writer
	Stderr   io.Writer
	// now is overridable for tests.
	now func() time.Time
}

func logic(ctx context.Context, opt options) error {
	cfg := opt.Config
	log := opt.Logger.With(zap.String("component", "cli"))

	//nolint:forbidigo // Progress output to console
	fmt.Fprintf(opt.Stderr, "Scanning folders in %s...\n", opt.Root)

	progress := newPainter(opt.Stderr, isTerminal(opt.Stderr) && !cfg.Debug)
	defer progress.close()

	scanOpts := dirrank.Options{
		Root:             opt.Root,
		Jobs:             cfg.Jobs,
		OnFolder:         progress.folder,
		ProgressInterval: cfg.ProgressInterval,
		Logger:           opt.Logger,
	}

	if progress.live {
		scanOpts.OnTick = progress.tick
	}

	res, err := dirrank.Scan(ctx, scanOpts)

	progress.clear()

	if err != nil {
		return err
	}

	vol, err := volume.Usage(ctx, res.Root)
	if err != nil {
		log.Warn("volume usage unavailable", zap.Error(err))

		vol = nil
	}

	if err := report.PrintSummary(res, vol, cfg.TopN, opt.Stdout); err != nil {
		return fmt.Errorf("printing summary: %w", err)
	}

	if opt.NoExport {
		return nil
	}

	path := opt.Output
	if path == "" {
		now := time.Now
		if opt.now != nil {
			now = opt.now
		}

		path = filepath.Join(cfg.OutputDir, report.DefaultFilename(now(), cfg.Format))
	}

	if err := report.Export(res, cfg.Format, path); err != nil {
		return fmt.Errorf("saving results: %w", err)
	}

	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	//nolint:forbidigo // Result location output to console
	fmt.Fprintf(opt.Stderr, "\nResults saved to: %s\n", path)

	return nil
}
