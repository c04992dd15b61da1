package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/valpere/linguacast/internal/relay"
	"github.com/valpere/linguacast/internal/translator"
)

func TestPrintLanguages(t *testing.T) {
	tr, err := buildTranslator(testConfig("mymemory", "google"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out bytes.Buffer
	if err := printLanguages(context.Background(), &out, relay.NewService(tr, nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) < 10 {
		t.Fatalf("expected a language per line, got %q", out.String())
	}
	if lines[0] != "en" {
		t.Errorf("expected first language en, got %q", lines[0])
	}
}

type mutedTranslator struct{}

func (mutedTranslator) Name() string { return "muted" }

func (mutedTranslator) Translate(context.Context, translator.Request) (*translator.Result, error) {
	return &translator.Result{}, nil
}

func (mutedTranslator) IsAvailable(context.Context) error { return nil }

func (mutedTranslator) SupportedLanguages(context.Context) ([]string, error) { return nil, nil }

func TestPrintLanguages_Empty(t *testing.T) {
	var out bytes.Buffer
	err := printLanguages(context.Background(), &out, relay.NewService(mutedTranslator{}, nil))
	if err == nil {
		t.Fatal("expected error for an empty language list")
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}
