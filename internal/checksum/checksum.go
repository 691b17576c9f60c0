package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// ListingFingerprint hashes a listing's identity as
// SHA256(link|title|company|location). Query string and fragment of link are
// ignored because search pages decorate the same posting with tracking params.
func (g *Generator) ListingFingerprint(link, title, company, location string) string {
	if idx := strings.IndexAny(link, "?#"); idx > -1 {
		link = link[:idx]
	}
	content := strings.Join([]string{
		strings.TrimSpace(link),
		strings.TrimSpace(title),
		strings.TrimSpace(company),
		strings.TrimSpace(location),
	}, "|")

	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
