package scraper

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"linkedin-jobs-export/internal/config"
	"linkedin-jobs-export/internal/normalize"
	"linkedin-jobs-export/internal/observability"
)

type Scraper struct {
	selectors      *Selectors
	normalizer     *normalize.Normalizer
	includeDetails bool
	logger         *observability.Logger
}

func NewScraper(cfg *config.Config, selectors *Selectors, logger *observability.Logger) *Scraper {
	return &Scraper{
		selectors:      selectors,
		normalizer:     normalize.NewNormalizer(cfg),
		includeDetails: cfg.Extract.IncludeDetails,
		logger:         logger,
	}
}

// ParseListing parses a search results page and returns its cards in document order.
func (s *Scraper) ParseListing(html string) ([]*Card, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var cards []*Card

	doc.Find(s.selectors.CardSelectors).Each(func(i int, sel *goquery.Selection) {
		card := &Card{
			SequenceNum: i,
			Title:       s.textOrNA(sel, s.selectors.TitleSelectors, KeyTitle, i),
			Company:     s.textOrNA(sel, s.selectors.CompanySelectors, KeyCompany, i),
			Location:    s.textOrNA(sel, s.selectors.LocationSelectors, KeyLocation, i),
			PostedAt:    s.postedAt(sel, i),
		}

		href, _ := tryAttr(sel, s.selectors.URLSelectors, "href")
		card.URL = normalizeURL(href)

		cards = append(cards, card)
	})

	return cards, nil
}

// JobViewURLs returns every URL in the raw page body that points at a job view.
func (s *Scraper) JobViewURLs(html string) []string {
	return FilterSubstring(ExtractURLs(html), s.selectors.JobViewMarker)
}

// postedAt tries each date selector in order and returns the first non-empty
// datetime attribute.
func (s *Scraper) postedAt(sel *goquery.Selection, cardNum int) string {
	if dt, ok := tryAttr(sel, s.selectors.DateSelectors, "datetime"); ok {
		return dt
	}
	s.logger.Debug("Card field missing", "card", cardNum, "field", KeyPostedAt)
	return NotAvailable
}

func (s *Scraper) textOrNA(sel *goquery.Selection, selectors []string, field string, cardNum int) string {
	node := firstMatch(sel, selectors)
	if node == nil {
		s.logger.Debug("Card field missing", "card", cardNum, "field", field)
		return NotAvailable
	}
	return s.normalizer.CleanText(node.Text())
}

// firstMatch returns the first element matched by the first selector that
// matches anything, or nil.
func firstMatch(s *goquery.Selection, selectors []string) *goquery.Selection {
	for _, selector := range selectors {
		node := s.Find(selector).First()
		if node.Length() > 0 {
			return node
		}
	}
	return nil
}

func tryAttr(s *goquery.Selection, selectors []string, attr string) (string, bool) {
	for _, selector := range selectors {
		val, exists := s.Find(selector).First().Attr(attr)
		if exists && strings.TrimSpace(val) != "" {
			return strings.TrimSpace(val), true
		}
	}
	return "", false
}

func normalizeURL(urlStr string) string {
	urlStr = strings.TrimSpace(urlStr)
	// drop the fragment
	if idx := strings.Index(urlStr, "#"); idx > -1 {
		urlStr = urlStr[:idx]
	}
	return urlStr
}
