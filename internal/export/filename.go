package export

import (
	"regexp"
	"strings"
)

const maxFileNameLen = 30

var reUnsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// FileName joins baseName with keyword (spaces become underscores), replaces
// every character outside [A-Za-z0-9_-] with an underscore and cuts the result
// to 30 characters.
func FileName(baseName, keyword string) string {
	name := baseName + strings.TrimSpace(strings.Join(strings.Split(keyword, " "), "_"))
	name = reUnsafeFileChars.ReplaceAllString(name, "_")
	if len(name) > maxFileNameLen {
		name = name[:maxFileNameLen]
	}
	return name
}
