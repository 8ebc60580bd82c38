package wikitext

import (
	"regexp"
	"strings"
)

var (
	refPairRe = regexp.MustCompile(`(?s)<ref.*?>.*?</ref>`)
	refSelfRe = regexp.MustCompile(`<ref[^>]*/>`)
	commentRe = regexp.MustCompile(`(?s)<!--.*?-->`)
	valRe     = regexp.MustCompile(`(?i)\{\{val\|([0-9.,]+)(?:\|.*?)?\}\}`)

	// Checksum-style registry numbers: 2-7 digits, 2-3 digits, check digit.
	identifierRe = regexp.MustCompile(`\b(\d{2,7}-\d{2,3}-\d)\b`)
	nonIDRe      = regexp.MustCompile(`[^\d-]`)
)

// CleanMarkup strips inline references, comments, and the {{val}} formatting
// template from a raw field value.
func CleanMarkup(s string) string {
	s = refPairRe.ReplaceAllString(s, "")
	s = refSelfRe.ReplaceAllString(s, "")
	s = commentRe.ReplaceAllString(s, "")
	s = valRe.ReplaceAllString(s, "$1")
	return strings.TrimSpace(s)
}

// NormalizeIdentifier reduces a registry-number field to a comparable form.
// If the value contains a checksum-style identifier, exactly that match is
// returned; otherwise everything except digits and hyphens is stripped.
func NormalizeIdentifier(s string) string {
	s = CleanMarkup(s)
	if m := identifierRe.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return strings.TrimSpace(nonIDRe.ReplaceAllString(s, ""))
}

// NormalizeText reduces a free-text field to a comparable form: non-breaking
// space variants become ordinary spaces and whitespace runs collapse.
func NormalizeText(s string) string {
	s = CleanMarkup(s)
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	s = strings.ReplaceAll(s, " ", " ")
	return strings.Join(strings.Fields(s), " ")
}
