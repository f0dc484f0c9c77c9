// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug generates ASCII URL slugs for book titles
// (e.g. "Les Misérables" becomes "les-miserables").
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// maxLength keeps slugs usable as URL segments.
const maxLength = 80

// From converts an arbitrary Unicode title into a URL-safe ASCII slug.
// Accents are stripped via NFD decomposition; any run of other characters
// collapses into a single hyphen. Non-Latin titles may produce "".
func From(s string) string {
	stripAccents := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(stripAccents, s)
	if err != nil {
		folded = s
	}

	var builder strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(folded) {
		isASCIIAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isASCIIAlnum {
			pendingHyphen = builder.Len() > 0
			continue
		}
		if pendingHyphen {
			builder.WriteByte('-')
			pendingHyphen = false
		}
		builder.WriteRune(r)
	}

	result := builder.String()
	if len(result) > maxLength {
		result = strings.TrimRight(result[:maxLength], "-")
	}
	return result
}
