package app

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/asaskevich/govalidator"
	"golang.org/x/sync/errgroup"

	"linkedin-jobs-export/internal/record"
	"linkedin-jobs-export/internal/scraper"
)

var ErrInvalidURL = errors.New("invalid detail URL")

const (
	labelSearch = "Job Query"
	labelDetail = "Job ID"
)

// SearchURL builds the search results URL for a zero-based page index.
func (o *Orchestrator) SearchURL(keyword, location string, pageIndex int) string {
	params := url.Values{}
	params.Set("keywords", keyword)
	params.Set("location", location)
	params.Set("start", strconv.Itoa(pageIndex*o.cfg.Search.PageSize))
	return o.cfg.Search.BaseURL + "?" + params.Encode()
}

// CollectPage fetches one search results page and returns its merged
// records in card order. A failed page fetch is returned as an error; failed
// detail lookups only leave the affected records without detail fields.
func (o *Orchestrator) CollectPage(ctx context.Context, keyword, location string, pageIndex int) ([]*record.Record, error) {
	searchURL := o.SearchURL(keyword, location, pageIndex)

	resp, err := o.fetcher.Fetch(ctx, searchURL, labelSearch)
	if err != nil {
		return nil, fmt.Errorf("fetch search page %d: %w", pageIndex, err)
	}

	body := string(resp.Body)
	cards, err := o.scraper.ParseListing(body)
	if err != nil {
		return nil, fmt.Errorf("parse search page %d: %w", pageIndex, err)
	}

	fmt.Fprintf(o.progress, "Total. Jobs: %d\n", len(cards))
	o.logger.Info("Search page parsed",
		"page", pageIndex,
		"url", searchURL,
		"cards", len(cards),
	)
	o.logger.Debug("Job view URLs on page",
		"page", pageIndex,
		"urls", o.scraper.JobViewURLs(body),
	)

	cards = o.filterDuplicates(pageIndex, cards)
	details := o.collectDetails(ctx, cards)

	records := make([]*record.Record, 0, len(cards))
	for i, card := range cards {
		merged := card.Summary().Merge(details[i])
		records = append(records, merged)

		fmt.Fprintf(o.progress, "[*] - %s, %s, %s, %s, %s, %s...\n",
			card.PostedAt, card.Title, card.Company, card.Location,
			merged.ValueOr(scraper.KeyRecruiter, scraper.NotAvailable),
			merged.ValueOr(scraper.KeyEmail, scraper.NotAvailable),
		)
	}

	return records, nil
}

// CollectDetail fetches and parses one job view page. It returns nil when the
// page cannot be fetched or has no detail container.
func (o *Orchestrator) CollectDetail(ctx context.Context, link string) *record.Record {
	resp, err := o.fetcher.Fetch(ctx, link, labelDetail)
	if err != nil {
		o.logger.Warn("Detail fetch failed",
			"link", link,
			"error", err.Error(),
		)
		fmt.Fprintf(o.progress, "[CollectDetail][Exception]: %v\n", err)
		return nil
	}

	detail, err := o.scraper.ParseDetail(string(resp.Body), resp.URL)
	if err != nil {
		o.logger.Warn("Detail unavailable",
			"link", link,
			"error", err.Error(),
		)
		return nil
	}
	return detail
}

// collectDetails looks up every card's detail page, at most
// pipeline.detail_workers at a time. details[i] belongs to cards[i] and is nil
// when no detail could be collected.
func (o *Orchestrator) collectDetails(ctx context.Context, cards []*scraper.Card) []*record.Record {
	details := make([]*record.Record, len(cards))

	var g errgroup.Group
	g.SetLimit(o.cfg.Pipeline.DetailWorkers)
	for i, card := range cards {
		i, card := i, card
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					details[i] = nil
					o.logger.Error("Detail collection panicked",
						"card", card.SequenceNum,
						"link", card.URL,
						"panic", fmt.Sprint(r),
					)
					fmt.Fprintf(o.progress, "[CollectDetail][Exception]: panic: %v\n", r)
				}
			}()
			if err := validateDetailURL(card.URL); err != nil {
				o.logger.Warn("Skipping detail enrichment",
					"card", card.SequenceNum,
					"title", card.Title,
					"error", err.Error(),
				)
				return nil
			}
			details[i] = o.CollectDetail(ctx, card.URL)
			return nil
		})
	}
	_ = g.Wait()

	return details
}

// filterDuplicates logs cards already seen during this run and drops them
// when pipeline.skip_duplicates is set.
func (o *Orchestrator) filterDuplicates(pageIndex int, cards []*scraper.Card) []*scraper.Card {
	kept := make([]*scraper.Card, 0, len(cards))
	for _, card := range cards {
		fp := o.checksum.ListingFingerprint(card.URL, card.Title, card.Company, card.Location)
		if _, dup := o.seen[fp]; dup {
			o.stats.Duplicates++
			o.logger.Info("Duplicate listing",
				"page", pageIndex,
				"card", card.SequenceNum,
				"title", card.Title,
				"company", card.Company,
				"skipped", o.cfg.Pipeline.SkipDuplicates,
			)
			if o.cfg.Pipeline.SkipDuplicates {
				continue
			}
		}
		o.seen[fp] = struct{}{}
		kept = append(kept, card)
	}
	return kept
}

func validateDetailURL(raw string) error {
	if !govalidator.IsRequestURL(raw) {
		return fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidURL, raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	return nil
}
