package scraper

import (
	"regexp"
	"strings"
)

var (
	reEmail = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-z]{2,}`)
	reURL   = regexp.MustCompile(`https?://(?:[a-zA-Z0-9$-_@.&+!*\\(),]|%[0-9a-fA-F]{2})+`)
)

// ExtractEmails returns every email-shaped substring of text joined by
// commas, in order of appearance with duplicates kept, or "NA" if none.
func ExtractEmails(text string) string {
	matches := reEmail.FindAllString(text, -1)
	if len(matches) == 0 {
		return NotAvailable
	}
	return strings.Join(matches, ",")
}

func ExtractURLs(text string) []string {
	return reURL.FindAllString(text, -1)
}

func FilterSubstring(items []string, sub string) []string {
	var out []string
	for _, item := range items {
		if strings.Contains(item, sub) {
			out = append(out, item)
		}
	}
	return out
}
