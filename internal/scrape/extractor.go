package scrape

import (
	"context"
	"fmt"
	"time"

	"betfast-props-scraper/internal/browser"
	"betfast-props-scraper/internal/observability"
)

// Settle bounds the wait for a table whose rows are still streaming in.
// The row count must hold for StablePolls consecutive polls; MaxWait caps
// the whole window so a jittery page cannot stall the run.
type Settle struct {
	PollInterval time.Duration
	StablePolls  int
	MaxWait      time.Duration
}

// Extractor pulls one snapshot of the props table out of the target view.
type Extractor struct {
	spec         TableSpec
	tableTimeout time.Duration
	settle       Settle
	logger       *observability.Logger
}

func NewExtractor(spec TableSpec, tableTimeout time.Duration, settle Settle, logger *observability.Logger) *Extractor {
	return &Extractor{
		spec:         spec,
		tableTimeout: tableTimeout,
		settle:       settle,
		logger:       logger,
	}
}

// Extract waits for the table, lets its row count settle, then parses a
// single HTML snapshot. A present-but-empty table is not an error.
func (e *Extractor) Extract(ctx context.Context, sess browser.Session) (*Table, error) {
	waitCtx, cancel := context.WithTimeout(ctx, e.tableTimeout)
	defer cancel()

	root, err := sess.Find(waitCtx, e.spec.Root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTableNotFound, err)
	}

	if err := e.waitSettled(ctx, sess); err != nil {
		return nil, err
	}

	html, err := root.HTML(ctx)
	if err != nil {
		return nil, fmt.Errorf("read props table: %w", err)
	}

	table, err := parseTable(html, e.spec)
	if err != nil {
		return nil, err
	}

	if table.Skipped > 0 {
		e.logger.Warn("dropped malformed table rows",
			"skipped", table.Skipped,
			"kept", len(table.Rows))
	}
	e.logger.Info("table extracted",
		"rows", len(table.Rows),
		"columns", len(table.Headers))

	return table, nil
}

// waitSettled polls the rendered row count until it holds still. If the
// window expires first we log it and take the snapshot as-is; a partially
// loaded table is an operator-visible warning, not a failed run.
func (e *Extractor) waitSettled(ctx context.Context, sess browser.Session) error {
	rowSel := browser.Selector{Query: e.spec.RowQuery}
	deadline := time.Now().Add(e.settle.MaxWait)

	lastCount := -1
	stable := 0
	for {
		els, err := sess.FindAll(ctx, rowSel)
		if err != nil {
			return fmt.Errorf("count table rows: %w", err)
		}

		count := len(els)
		if count == lastCount {
			stable++
		} else {
			lastCount = count
			stable = 1
		}

		if stable >= e.settle.StablePolls {
			e.logger.Debug("table row count settled", "rows", count, "polls", stable)
			return nil
		}
		if time.Now().After(deadline) {
			e.logger.Warn("table row count never settled, taking snapshot anyway",
				"rows", count,
				"window", e.settle.MaxWait.String())
			return nil
		}

		select {
		case <-time.After(e.settle.PollInterval):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
