// Package langcode maps the language tags clients send (often full BCP-47
// tags such as "en-US" from browser speech APIs) to the short codes
// translation and speech providers accept.
package langcode

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Auto asks a provider to detect the source language itself.
const Auto = "auto"

// regional lists tags whose region changes the written language, so providers
// must receive them whole.
var regional = map[string]string{
	"zh-cn":   "zh-CN",
	"zh-sg":   "zh-CN",
	"zh-hans": "zh-CN",
	"zh-tw":   "zh-TW",
	"zh-hk":   "zh-TW",
	"zh-hant": "zh-TW",
	"pt-pt":   "pt-PT",
	"pt-br":   "pt",
}

// Normalize turns "en-US" or "en_US" into "en". Chinese script variants and
// European Portuguese keep their region; "auto" passes through.
func Normalize(code string) (string, error) {
	code = strings.ReplaceAll(strings.TrimSpace(code), "_", "-")
	if strings.EqualFold(code, Auto) {
		return Auto, nil
	}
	if v, ok := regional[strings.ToLower(code)]; ok {
		return v, nil
	}

	tag, err := language.Parse(code)
	if err != nil {
		return "", fmt.Errorf("invalid language code %q: %w", code, err)
	}
	base, _ := tag.Base()
	return base.String(), nil
}
