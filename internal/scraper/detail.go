package scraper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"linkedin-jobs-export/internal/normalize"
	"linkedin-jobs-export/internal/record"
)

// ErrNoDetailContainer means the job view page has no detail container at all.
var ErrNoDetailContainer = errors.New("detail container not found")

// ParseDetail extracts recruiter, email and criteria fields from a job view
// page. link is stored as the record's Link. Missing sub-nodes resolve to
// defaults; a missing container returns ErrNoDetailContainer.
func (s *Scraper) ParseDetail(html string, link string) (*record.Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	container := doc.Find(s.selectors.DetailContainer).First()
	if container.Length() == 0 {
		return nil, ErrNoDetailContainer
	}

	recruiter := NotAvailable
	if node := firstMatch(container, s.selectors.RecruiterSelectors); node != nil {
		recruiter = strings.TrimSpace(node.Text())
	} else {
		s.logger.Debug("Detail field missing", "link", link, "field", KeyRecruiter)
	}

	criteria := record.New()
	if node := firstMatch(container, s.selectors.CriteriaSelectors); node != nil {
		criteria = ParseCriteria(node.Text())
	} else {
		s.logger.Debug("Detail field missing", "link", link, "field", "criteria")
	}

	detail := record.New()
	detail.Set(KeyRecruiter, recruiter)
	detail.Set(KeyEmail, ExtractEmails(container.Text()))
	detail.Set(KeyLink, link)
	detail = detail.Merge(criteria)

	if s.includeDetails {
		description := NotAvailable
		if node := firstMatch(container, s.selectors.DescriptionSelectors); node != nil {
			description = s.normalizer.TruncateDetails(s.normalizer.CleanText(node.Text()))
		} else {
			s.logger.Debug("Detail field missing", "link", link, "field", KeyDetails)
		}
		detail.Set(KeyDetails, description)
	}

	return detail, nil
}

// ParseCriteria splits the criteria list text into lines and pairs adjacent
// non-blank lines as key, value.
func ParseCriteria(text string) *record.Record {
	return record.FromPairs(normalize.Lines(text))
}
