package utils

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Slugify lowercases the input and collapses everything that is not a letter
// or digit into single hyphens.
func Slugify(s string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen

	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}

// PostingSlug derives the immutable public lookup key for a posting from its
// title, company and creation time. The timestamp suffix keeps slugs unique
// across identical titles without a retry loop against the unique index.
func PostingSlug(title, company string, createdAt time.Time) string {
	base := Slugify(fmt.Sprintf("%s %s", title, company))
	return fmt.Sprintf("%s-%d", base, createdAt.Unix())
}
