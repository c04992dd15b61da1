// Package chunker cuts text into pieces small enough for providers that cap
// the length of a single request, preferring natural pauses as cut points.
package chunker

import (
	"strings"
	"unicode"
)

// boundaries lists cut-point classes from most to least preferred. A cut is
// placed right after the matching rune.
var boundaries = []func(r rune) bool{
	func(r rune) bool { return r == '\n' },
	isSentenceEnd,
	isClauseEnd,
	unicode.IsSpace,
}

func isSentenceEnd(r rune) bool {
	switch r {
	case '.', '!', '?', '…', '。', '！', '？':
		return true
	}
	return false
}

func isClauseEnd(r rune) bool {
	switch r {
	case ',', ';', ':', '，', '；', '：', '、', ')', '—':
		return true
	}
	return false
}

// Chunk splits text into trimmed, non-empty pieces of at most maxRunes runes.
// If maxRunes <= 0 the trimmed text is returned as a single piece. Blank or
// punctuation-only input yields no pieces.
func Chunk(text string, maxRunes int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	runes := []rune(text)
	if maxRunes <= 0 || len(runes) <= maxRunes {
		return appendPiece(nil, runes)
	}

	var chunks []string
	for len(runes) > 0 {
		if len(runes) <= maxRunes {
			chunks = appendPiece(chunks, runes)
			break
		}
		cut := findCut(runes[:maxRunes])
		chunks = appendPiece(chunks, runes[:cut])
		runes = runes[cut:]
	}
	return chunks
}

// findCut returns how many runes of window to consume. Sentence punctuation
// only counts when followed by a space or at the very end of the window, so
// "3.14" and "e.g." stay together where possible.
func findCut(window []rune) int {
	for _, match := range boundaries {
		for i := len(window) - 1; i > 0; i-- {
			if !match(window[i]) {
				continue
			}
			if isSentenceEnd(window[i]) && i+1 < len(window) && window[i] <= unicode.MaxASCII && !unicode.IsSpace(window[i+1]) {
				continue
			}
			return i + 1
		}
	}
	return len(window)
}

func appendPiece(chunks []string, piece []rune) []string {
	s := strings.TrimSpace(string(piece))
	if s == "" || isPunctuationOnly(s) {
		return chunks
	}
	return append(chunks, s)
}

func isPunctuationOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsPunct(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
