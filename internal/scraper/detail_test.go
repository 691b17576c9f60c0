package scraper

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"linkedin-jobs-export/internal/config"
)

const detailPageHTML = `<html><body>
<section class="core-section-container">
<div class="core-section-container__content break-words">
  <div class="base-main-card">
    <h3 class="base-main-card__title">
      Priya Raman
    </h3>
  </div>
  <div class="show-more-less-html__markup relative overflow-hidden">
    We need an SQL developer.   Send your CV to hr@acme.example.com
    or careers@acme.co.in today.
  </div>
  <ul class="description__job-criteria-list">
    <li>
      <h3>
        Seniority level
      </h3>
      <span>
        Mid-Senior level
      </span>
    </li>
    <li>
      <h3>
        Employment type
      </h3>
      <span>
        Full-time
      </span>
    </li>
  </ul>
</div>
</section>
</body></html>`

const link = "https://www.linkedin.com/jobs/view/sql-developer-at-acme-111"

func TestParseDetail(t *testing.T) {
	detail, err := testScraper(nil).ParseDetail(detailPageHTML, link)
	if err != nil {
		t.Fatalf("ParseDetail: %v", err)
	}

	wantKeys := []string{KeyRecruiter, KeyEmail, KeyLink, "Seniority level", "Employment type"}
	if !reflect.DeepEqual(detail.Keys(), wantKeys) {
		t.Fatalf("keys = %v, want %v", detail.Keys(), wantKeys)
	}

	want := map[string]string{
		KeyRecruiter:      "Priya Raman",
		KeyEmail:          "hr@acme.example.com,careers@acme.co.in",
		KeyLink:           link,
		"Seniority level": "Mid-Senior level",
		"Employment type": "Full-time",
	}
	for k, v := range want {
		if detail.Value(k) != v {
			t.Errorf("%s = %q, want %q", k, detail.Value(k), v)
		}
	}
}

func TestParseDetailSoftMisses(t *testing.T) {
	html := `<div class="core-section-container__content break-words"><p>No contact info.</p></div>`

	detail, err := testScraper(nil).ParseDetail(html, link)
	if err != nil {
		t.Fatalf("ParseDetail: %v", err)
	}
	if detail.Value(KeyRecruiter) != NotAvailable {
		t.Errorf("Recruiter = %q, want NA", detail.Value(KeyRecruiter))
	}
	if detail.Value(KeyEmail) != NotAvailable {
		t.Errorf("Email = %q, want NA", detail.Value(KeyEmail))
	}
	if detail.Len() != 3 {
		t.Errorf("keys = %v, want only Recruiter/Email/Link", detail.Keys())
	}
}

func TestParseDetailHardMiss(t *testing.T) {
	_, err := testScraper(nil).ParseDetail(`<html><body><h1>Sign in</h1></body></html>`, link)
	if !errors.Is(err, ErrNoDetailContainer) {
		t.Errorf("err = %v, want ErrNoDetailContainer", err)
	}
}

func TestParseDetailCriteriaOverridesReserved(t *testing.T) {
	html := `<div class="core-section-container__content break-words">
<ul class="description__job-criteria-list">
Email
from-criteria
</ul></div>`

	detail, err := testScraper(nil).ParseDetail(html, link)
	if err != nil {
		t.Fatalf("ParseDetail: %v", err)
	}
	if detail.Value(KeyEmail) != "from-criteria" {
		t.Errorf("Email = %q, want criteria value", detail.Value(KeyEmail))
	}
}

func TestParseDetailIncludesDetails(t *testing.T) {
	cfg := config.Default()
	cfg.Extract.IncludeDetails = true
	cfg.Extract.MaxDetailsChars = 40

	detail, err := testScraper(cfg).ParseDetail(detailPageHTML, link)
	if err != nil {
		t.Fatalf("ParseDetail: %v", err)
	}
	got := detail.Value(KeyDetails)
	if !strings.HasPrefix(got, "We need an SQL developer. Send") || !strings.HasSuffix(got, "…") {
		t.Errorf("Details = %q", got)
	}
	keys := detail.Keys()
	if keys[len(keys)-1] != KeyDetails {
		t.Errorf("Details should be the last key: %v", keys)
	}
}

func TestParseCriteria(t *testing.T) {
	got := ParseCriteria("\n Seniority level \n\n Entry level\n Industries\n IT Services\n Job function\n")
	wantKeys := []string{"Seniority level", "Industries"}
	if !reflect.DeepEqual(got.Keys(), wantKeys) {
		t.Errorf("keys = %v, want %v", got.Keys(), wantKeys)
	}
	if got.Value("Industries") != "IT Services" {
		t.Errorf("Industries = %q", got.Value("Industries"))
	}
	if ParseCriteria("").Len() != 0 {
		t.Errorf("empty text should give an empty record")
	}
}
