package app

import (
	"context"
	"fmt"
	"time"

	"betfast-props-scraper/internal/auth"
	"betfast-props-scraper/internal/export"
	"betfast-props-scraper/internal/nav"
	"betfast-props-scraper/internal/observability"
	"betfast-props-scraper/internal/scrape"
)

// Orchestrator runs the pipeline: open an authenticated session, navigate
// to the props view, extract the table, write the CSV.
type Orchestrator struct {
	opener    *auth.Opener
	navigator *nav.Navigator
	extractor *scrape.Extractor
	writer    export.Writer
	logger    *observability.Logger
}

func NewOrchestrator(
	opener *auth.Opener,
	navigator *nav.Navigator,
	extractor *scrape.Extractor,
	writer export.Writer,
	logger *observability.Logger,
) *Orchestrator {
	return &Orchestrator{
		opener:    opener,
		navigator: navigator,
		extractor: extractor,
		writer:    writer,
		logger:    logger,
	}
}

// RunStats summarize one completed run.
type RunStats struct {
	Rows        int
	SkippedRows int
	Columns     int
	Duration    time.Duration
}

// Run executes the pipeline once. Every failure is final: the first error
// aborts the run, and the browser session opened here is closed on every
// exit path, success or not.
func (o *Orchestrator) Run(ctx context.Context, creds auth.Credentials) (*RunStats, error) {
	started := time.Now()

	sess, err := o.opener.Open(ctx, creds)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := sess.Close(); closeErr != nil {
			o.logger.Error("failed to close browser session", "error", closeErr.Error())
		}
	}()

	if err := o.navigator.Navigate(ctx, sess); err != nil {
		return nil, err
	}

	table, err := o.extractor.Extract(ctx, sess)
	if err != nil {
		return nil, err
	}

	if len(table.Rows) == 0 {
		o.logger.Warn("props table is empty, writing header-only file")
	}

	if err := o.writer.Write(table.Headers, table.Rows); err != nil {
		return nil, fmt.Errorf("write output: %w", err)
	}

	stats := &RunStats{
		Rows:        len(table.Rows),
		SkippedRows: table.Skipped,
		Columns:     len(table.Headers),
		Duration:    time.Since(started),
	}

	o.logger.Info("run completed",
		"rows", stats.Rows,
		"skipped_rows", stats.SkippedRows,
		"columns", stats.Columns,
		"duration", stats.Duration.String(),
	)

	return stats, nil
}
