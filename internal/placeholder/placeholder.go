// Package placeholder shields markup that an LLM translator must not touch.
// Code, HTML tags, template variables and URLs are swapped for numbered
// [[n]] tokens before prompting and put back afterwards.
package placeholder

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Alternatives are tried left to right at each position, so fenced blocks win
// over the inline spans they contain.
var (
	reProtected = regexp.MustCompile("(?s)```.*?```" +
		"|`[^`\n]+`" +
		`|</?[A-Za-z][^<>\n]*>` +
		`|\{\{[^{}]*\}\}` +
		`|https?://[^\s<>"]+`)

	reToken = regexp.MustCompile(`\[\[(\d+)\]\]`)
)

// Hint is appended to prompts that carry tokens.
const Hint = "Keep every [[n]] token exactly as written and in a sensible position; do not translate or drop them."

// Set holds the originals replaced by Protect, indexed by token number.
type Set struct {
	originals []string
}

// Protect returns text with protected spans replaced by [[0]], [[1]], ...
func Protect(text string) (string, *Set) {
	set := &Set{}
	protected := reProtected.ReplaceAllStringFunc(text, func(match string) string {
		set.originals = append(set.originals, match)
		return token(len(set.originals) - 1)
	})
	return protected, set
}

func token(i int) string {
	return fmt.Sprintf("[[%d]]", i)
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.originals)
}

// Restore puts the originals back. Tokens with unknown numbers are left as
// they are.
func (s *Set) Restore(text string) string {
	if s.Len() == 0 {
		return text
	}
	return reToken.ReplaceAllStringFunc(text, func(match string) string {
		i, err := strconv.Atoi(reToken.FindStringSubmatch(match)[1])
		if err != nil || i >= len(s.originals) {
			return match
		}
		return s.originals[i]
	})
}

// Missing lists token numbers absent from text.
func (s *Set) Missing(text string) []int {
	var missing []int
	for i := 0; i < s.Len(); i++ {
		if !strings.Contains(text, token(i)) {
			missing = append(missing, i)
		}
	}
	return missing
}
