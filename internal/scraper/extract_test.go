package scraper

import (
	"reflect"
	"testing"
)

func TestExtractEmails(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"no contact here", "NA"},
		{"", "NA"},
		{"reach jane.doe+jobs@mail.example.org now", "jane.doe+jobs@mail.example.org"},
		{"a@b.io, c_d@e-f.com and a@b.io", "a@b.io,c_d@e-f.com,a@b.io"},
		{"broken@host and x@y.c", "NA"},
		{"upper TLD x@y.COM", "NA"},
	}

	for _, tt := range tests {
		if got := ExtractEmails(tt.input); got != tt.want {
			t.Errorf("ExtractEmails(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestExtractURLsAndFilter(t *testing.T) {
	text := `<a href="https://www.linkedin.com/jobs/view/1">x</a> see http://example.com/a?b=c and https://www.linkedin.com/company/acme`
	urls := ExtractURLs(text)
	want := []string{
		"https://www.linkedin.com/jobs/view/1",
		"http://example.com/a?b=c",
		"https://www.linkedin.com/company/acme",
	}
	if !reflect.DeepEqual(urls, want) {
		t.Fatalf("ExtractURLs = %q, want %q", urls, want)
	}

	got := FilterSubstring(urls, "linkedin.com/jobs/view/")
	if !reflect.DeepEqual(got, []string{"https://www.linkedin.com/jobs/view/1"}) {
		t.Errorf("FilterSubstring = %q", got)
	}
	if FilterSubstring(nil, "x") != nil {
		t.Errorf("FilterSubstring(nil) should be nil")
	}
}
