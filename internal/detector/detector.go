// Package detector guesses the language of a text so providers that cannot
// auto-detect still get an explicit source language.
package detector

import (
	"strings"
	"sync"

	lingua "github.com/pemistahl/lingua-go"
)

// Detector builds its lingua models on first use; they are large and the
// server may never need them. Safe for concurrent use.
type Detector struct {
	languages []lingua.Language

	once     sync.Once
	detector lingua.LanguageDetector
}

// New returns a Detector restricted to languages, or to every language lingua
// knows when none are given.
func New(languages ...lingua.Language) *Detector {
	return &Detector{languages: languages}
}

func (d *Detector) build() {
	builder := lingua.NewLanguageDetectorBuilder()
	if len(d.languages) >= 2 {
		d.detector = builder.FromLanguages(d.languages...).Build()
		return
	}
	d.detector = builder.FromAllLanguages().Build()
}

func (d *Detector) Detect(text string) (lingua.Language, bool) {
	if strings.TrimSpace(text) == "" {
		return lingua.Unknown, false
	}
	d.once.Do(d.build)
	return d.detector.DetectLanguageOf(text)
}

// DetectISO returns the ISO 639-1 code in lower case, e.g. "uk".
func (d *Detector) DetectISO(text string) (string, bool) {
	lang, ok := d.Detect(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(lang.IsoCode639_1().String()), true
}
