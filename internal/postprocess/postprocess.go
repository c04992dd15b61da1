// Package postprocess strips the chatter LLM-backed translators wrap around
// the translation they were asked for.
package postprocess

import (
	"regexp"
	"strings"
)

// Clean applies every cleaning step in order and returns the trimmed text.
func Clean(text string) string {
	for _, step := range steps {
		text = strings.TrimSpace(step(text))
	}
	return text
}

var steps = []func(string) string{
	stripReasoning,
	stripPreamble,
	stripTrailingNote,
	unwrapQuotes,
}

// RE2 has no backreferences, so every tag pair is spelled out.
var (
	reasoningRe = regexp.MustCompile(
		`(?is)<thinking>.*?</thinking>|<think>.*?</think>|<reasoning>.*?</reasoning>|<reflection>.*?</reflection>`,
	)
	// an opening tag with no closing tag means the model was cut off
	openReasoningRe = regexp.MustCompile(`(?is)(?:<thinking>|<think>|<reasoning>|<reflection>).*$`)
)

func stripReasoning(text string) string {
	text = reasoningRe.ReplaceAllString(text, "")
	return openReasoningRe.ReplaceAllString(text, "")
}

// Preambles must start the text and end with a colon.
var preambleRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(?:(?:certainly|sure|of course)[,.!]?\s+)?here(?:'s| is)(?: the| your)? (?:translated )?(?:translation|text)(?: in [\p{L} ]+)?\s*:`),
	regexp.MustCompile(`(?i)^(?:the )?(?:translation|translated text)(?: in [\p{L} ]+)?\s*:`),
}

func stripPreamble(text string) string {
	for _, re := range preambleRes {
		if loc := re.FindStringIndex(text); loc != nil {
			text = strings.TrimSpace(text[loc[1]:])
		}
	}
	return text
}

// noteRe matches a trailing explanatory paragraph such as
// "\n\nNote: the idiom has no direct equivalent".
var noteRe = regexp.MustCompile(`(?is)\n\s*\n\s*(?:\(?note|explanation)\b.*$`)

func stripTrailingNote(text string) string {
	return noteRe.ReplaceAllString(text, "")
}

var quotePairs = map[rune]rune{
	'"':      '"',
	'\'':     '\'',
	'«':      '»',
	'\u201C': '\u201D',
	'\u2018': '\u2019',
	'\u300C': '\u300D',
}

func unwrapQuotes(text string) string {
	runes := []rune(text)
	if len(runes) < 2 {
		return text
	}
	closing, ok := quotePairs[runes[0]]
	if !ok || runes[len(runes)-1] != closing {
		return text
	}
	return string(runes[1 : len(runes)-1])
}
