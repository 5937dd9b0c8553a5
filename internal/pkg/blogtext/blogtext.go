// Package blogtext derives presentation fields from raw blog content:
// excerpts, estimated read time and normalized tag lists.
package blogtext

import (
	"regexp"
	"strings"
)

// excerptLimit is the number of leading characters kept when deriving
// an excerpt from content.
const excerptLimit = 150

// wordsPerMinute is the reading speed used for read-time estimation.
const wordsPerMinute = 200

var markupRe = regexp.MustCompile(`<[^>]*>`)

// StripMarkup removes angle-bracket markup from content
func StripMarkup(s string) string {
	return markupRe.ReplaceAllString(s, "")
}

// Excerpt derives a short preview from content. Content longer than the
// excerpt limit is truncated and suffixed with an ellipsis; either way
// markup is stripped from the result.
func Excerpt(content string) string {
	runes := []rune(content)
	if len(runes) > excerptLimit {
		return StripMarkup(string(runes[:excerptLimit])) + "..."
	}
	return StripMarkup(content)
}

// ReadTime estimates reading time in minutes, with a floor of one minute
func ReadTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// ParseTags splits a comma-separated tag string into trimmed, lowercased,
// deduplicated tags. Empty entries are dropped.
func ParseTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}

	seen := make(map[string]struct{})
	tags := make([]string, 0)
	for _, part := range strings.Split(s, ",") {
		tag := strings.ToLower(strings.TrimSpace(part))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

// NormalizeTags applies the same trimming, lowercasing and deduplication
// to an already-split tag list
func NormalizeTags(in []string) []string {
	return ParseTags(strings.Join(in, ","))
}
