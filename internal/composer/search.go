package composer

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// diacriticFolder decomposes text and drops combining marks, so "Đáp Án"
// and "dap an" compare equal after lowercasing. Base letters such as
// "đ" carry no combining mark and survive on both sides.
var diacriticFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeContent strips HTML tags and collapses runs of whitespace.
// It is the shared normalization for search matching and excerpts.
func NormalizeContent(value string) string {
	stripped := htmlTagPattern.ReplaceAllString(value, " ")
	return strings.Join(strings.Fields(stripped), " ")
}

// FoldSearchText lowers NormalizeContent output and removes diacritics,
// producing the canonical form both the query and the candidate content
// are matched in.
func FoldSearchText(value string) string {
	lowered := strings.ToLower(NormalizeContent(value))
	folded, _, err := transform.String(diacriticFolder, lowered)
	if err != nil {
		return lowered
	}
	return folded
}

// Excerpt returns the normalized content truncated to maxLen runes, with
// an ellipsis when something was cut.
func Excerpt(value string, maxLen int) string {
	normalized := []rune(NormalizeContent(value))
	if len(normalized) <= maxLen {
		return string(normalized)
	}
	return string(normalized[:maxLen]) + "…"
}
