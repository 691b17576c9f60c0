package scraper

import "linkedin-jobs-export/internal/record"

// NotAvailable fills scalar fields whose markup is missing.
const NotAvailable = "NA"

const (
	KeyPostedAt  = "PostedAt"
	KeyTitle     = "Title"
	KeyCompany   = "Company"
	KeyLocation  = "Location"
	KeyRecruiter = "Recruiter"
	KeyEmail     = "Email"
	KeyLink      = "Link"
	KeyDetails   = "Details"
)

// Card is the summary of one listing on a search results page.
type Card struct {
	PostedAt    string
	Title       string
	Company     string
	Location    string
	URL         string
	SequenceNum int
}

// Summary returns the card's four summary fields as a record.
func (c *Card) Summary() *record.Record {
	r := record.New()
	r.Set(KeyPostedAt, c.PostedAt)
	r.Set(KeyTitle, c.Title)
	r.Set(KeyCompany, c.Company)
	r.Set(KeyLocation, c.Location)
	return r
}

type Selectors struct {
	CardSelectors        string   `yaml:"card_selectors"`
	TitleSelectors       []string `yaml:"title_selectors"`
	CompanySelectors     []string `yaml:"company_selectors"`
	LocationSelectors    []string `yaml:"location_selectors"`
	URLSelectors         []string `yaml:"url_selectors"`
	DateSelectors        []string `yaml:"date_selectors"`
	DetailContainer      string   `yaml:"detail_container"`
	RecruiterSelectors   []string `yaml:"recruiter_selectors"`
	DescriptionSelectors []string `yaml:"description_selectors"`
	CriteriaSelectors    []string `yaml:"criteria_selectors"`
	JobViewMarker        string   `yaml:"job_view_marker"`
}

// DefaultSelectors matches the public LinkedIn job search and job view markup.
func DefaultSelectors() *Selectors {
	return &Selectors{
		CardSelectors:     "div.base-search-card.job-search-card",
		TitleSelectors:    []string{"h3.base-search-card__title"},
		CompanySelectors:  []string{"h4.base-search-card__subtitle"},
		LocationSelectors: []string{"span.job-search-card__location"},
		URLSelectors:      []string{"a.base-card__full-link"},
		DateSelectors: []string{
			"time.job-search-card__listdate",
			"time.job-search-card__listdate--new",
		},
		DetailContainer:      "div.core-section-container__content.break-words",
		RecruiterSelectors:   []string{"h3.base-main-card__title"},
		DescriptionSelectors: []string{"div.show-more-less-html__markup"},
		CriteriaSelectors:    []string{"ul.description__job-criteria-list"},
		JobViewMarker:        "linkedin.com/jobs/view/",
	}
}
