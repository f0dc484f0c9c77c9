// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import "strings"

const (
	// DefaultPageSize is the target characters (runes) per page.
	DefaultPageSize = 3000

	// PaginationVersion identifies the splitting rules below. Bump it whenever
	// Paginate can produce different boundaries for the same input.
	PaginationVersion = 2

	// paragraphMinOffset is how far into a window a paragraph break must sit
	// before it is preferred over a sentence break.
	paragraphMinOffset = 1000
)

var (
	paragraphBreak = []rune("\n\n")
	sentenceBreak  = []rune(". ")
)

/*
Paginate splits content into pages of at most maxCharsPerPage runes.

Each window that does not reach the end of the text is cut at, in order of
preference:
 1. the last paragraph break ("\n\n") at least 1000 runes into the window
 2. the last sentence break (". ") past the window's first rune, keeping the
    period on the current page
 3. the raw window boundary

Pages are trimmed and empty pages dropped, so whitespace-only content yields no
pages. A non-positive maxCharsPerPage falls back to [DefaultPageSize].
*/
func Paginate(content string, maxCharsPerPage int) []Page {
	if maxCharsPerPage <= 0 {
		maxCharsPerPage = DefaultPageSize
	}

	text := []rune(content)
	if len(text) <= maxCharsPerPage {
		return appendPage(nil, text)
	}

	var pages []Page
	for start := 0; start < len(text); {
		end := start + maxCharsPerPage
		if end >= len(text) {
			end = len(text)
		} else {
			end = breakPoint(text, start, end)
		}
		pages = appendPage(pages, text[start:end])
		start = end
	}
	return pages
}

// breakPoint picks the cut for the window text[start:end]. The result is
// always greater than start.
func breakPoint(text []rune, start, end int) int {
	window := text[start:end]

	if at := lastIndex(window, paragraphBreak); at >= paragraphMinOffset {
		return start + at
	}
	if at := lastIndex(window, sentenceBreak); at > 0 {
		return start + at + 1
	}
	return end
}

func appendPage(pages []Page, chunk []rune) []Page {
	text := strings.TrimSpace(string(chunk))
	if text == "" {
		return pages
	}
	return append(pages, Page{Index: len(pages), Text: text})
}

// lastIndex is strings.LastIndex over runes.
func lastIndex(haystack, needle []rune) int {
	for i := len(haystack) - len(needle); i >= 0; i-- {
		match := true
		for j, r := range needle {
			if haystack[i+j] != r {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
