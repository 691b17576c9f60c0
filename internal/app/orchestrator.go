package app

import (
	"context"
	"fmt"
	"io"

	"linkedin-jobs-export/internal/checksum"
	"linkedin-jobs-export/internal/config"
	"linkedin-jobs-export/internal/fetcher"
	"linkedin-jobs-export/internal/observability"
	"linkedin-jobs-export/internal/record"
	"linkedin-jobs-export/internal/scraper"
)

// Orchestrator drives one scraping run. It is not safe for concurrent Runs.
type Orchestrator struct {
	cfg      *config.Config
	logger   *observability.Logger
	fetcher  *fetcher.Fetcher
	scraper  *scraper.Scraper
	checksum *checksum.Generator
	progress io.Writer

	seen  map[string]struct{}
	stats *RunStats
}

func NewOrchestrator(
	cfg *config.Config,
	logger *observability.Logger,
	f *fetcher.Fetcher,
	s *scraper.Scraper,
	progress io.Writer,
) *Orchestrator {
	if progress == nil {
		progress = io.Discard
	}
	console := &syncWriter{w: progress}
	if f != nil {
		f.SetProgress(console)
	}

	return &Orchestrator{
		cfg:      cfg,
		logger:   logger,
		fetcher:  f,
		scraper:  s,
		checksum: checksum.NewGenerator(),
		progress: console,
		seen:     make(map[string]struct{}),
		stats:    &RunStats{},
	}
}

type RunStats struct {
	PagesRequested int
	PagesFailed    int
	Records        int
	Duplicates     int
	StoppedReason  string
}

// Run collects pages 0..numPages-1 in order and returns their records
// concatenated in page order, then card order. A failing page is logged and
// skipped; cancelling ctx stops before the next page.
func (o *Orchestrator) Run(ctx context.Context, keyword, location string, numPages int) ([]*record.Record, *RunStats) {
	o.seen = make(map[string]struct{})
	o.stats = &RunStats{}
	stats := o.stats

	o.logger.Info("Starting pagination",
		"keyword", keyword,
		"location", location,
		"pages", numPages,
		"detail_workers", o.cfg.Pipeline.DetailWorkers,
	)

	var jobs []*record.Record
	for pageIndex := 0; pageIndex < numPages; pageIndex++ {
		if err := ctx.Err(); err != nil {
			stats.StoppedReason = fmt.Sprintf("stopped before page %d: %v", pageIndex, err)
			o.logger.Warn("Run interrupted",
				"page", pageIndex,
				"error", err.Error(),
			)
			break
		}

		stats.PagesRequested++
		records, err := o.collectPageSafe(ctx, keyword, location, pageIndex)
		if err != nil {
			stats.PagesFailed++
			o.logger.Error("Page failed",
				"page", pageIndex,
				"error", err.Error(),
			)
			fmt.Fprintf(o.progress, "[Run][Exception]: page %d: %v\n", pageIndex, err)
			continue
		}

		jobs = append(jobs, records...)
		o.logger.Info("Page collected",
			"page", pageIndex,
			"records", len(records),
			"total_records", len(jobs),
		)
	}

	stats.Records = len(jobs)
	if stats.StoppedReason == "" {
		stats.StoppedReason = fmt.Sprintf("completed %d pages", numPages)
	}

	o.logger.Info("Pagination completed",
		"pages_requested", stats.PagesRequested,
		"pages_failed", stats.PagesFailed,
		"records", stats.Records,
		"duplicates", stats.Duplicates,
		"reason", stats.StoppedReason,
	)

	return jobs, stats
}

// collectPageSafe turns a panic inside one page into that page's error.
func (o *Orchestrator) collectPageSafe(ctx context.Context, keyword, location string, pageIndex int) (records []*record.Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			records = nil
			err = fmt.Errorf("panic while collecting page %d: %v", pageIndex, r)
		}
	}()
	return o.CollectPage(ctx, keyword, location, pageIndex)
}
