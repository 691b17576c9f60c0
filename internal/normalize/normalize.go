package normalize

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"linkedin-jobs-export/internal/config"
)

var reSpaces = regexp.MustCompile(`\s+`)

type Normalizer struct {
	cfg *config.Config
}

func NewNormalizer(cfg *config.Config) *Normalizer {
	return &Normalizer{cfg: cfg}
}

// CleanText trims s and, depending on config, replaces NBSP and collapses
// whitespace runs into one space.
func (n *Normalizer) CleanText(s string) string {
	if n.cfg.Normalize.TrimNBSP {
		s = strings.ReplaceAll(s, "\u00a0", " ")
	}
	if n.cfg.Normalize.CollapseSpaces {
		s = reSpaces.ReplaceAllString(s, " ")
	}
	return strings.TrimSpace(s)
}

// TruncateDetails cuts text to extract.max_details_chars runes, preferring a
// word boundary and ending with an ellipsis. Zero disables the limit.
func (n *Normalizer) TruncateDetails(text string) string {
	limit := n.cfg.Extract.MaxDetailsChars
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	if limit == 1 {
		return "…"
	}

	runes := []rune(text)
	truncated := string(runes[:limit-1])
	if lastSpace := strings.LastIndex(truncated, " "); lastSpace > 0 {
		truncated = truncated[:lastSpace]
	}
	return truncated + "…"
}

// Lines splits text on line boundaries and returns the trimmed non-blank lines.
func Lines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
