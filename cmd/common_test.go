package cmd

import (
	"testing"

	"github.com/valpere/linguacast/internal/config"
)

func testConfig(translation, speech string) *config.Config {
	return &config.Config{
		Translation: config.TranslationConfig{Provider: translation},
		Speech:      config.SpeechConfig{Provider: speech},
	}
}

func TestBuildTranslator(t *testing.T) {
	for _, name := range []string{"googleweb", "google", "mymemory", "ollama"} {
		tr, err := buildTranslator(testConfig(name, "google"))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if tr.Name() != name {
			t.Errorf("expected provider %q, got %q", name, tr.Name())
		}
	}
}

func TestBuildTranslator_RequiresKeys(t *testing.T) {
	for _, name := range []string{"openrouter", "systran"} {
		if _, err := buildTranslator(testConfig(name, "google")); err == nil {
			t.Errorf("%s: expected error without api key", name)
		}
	}

	cfg := testConfig("systran", "google")
	cfg.Translation.Systran.APIKey = "key"
	tr, err := buildTranslator(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Name() != "systran" {
		t.Errorf("expected systran, got %q", tr.Name())
	}
}

func TestBuildTranslator_Unknown(t *testing.T) {
	if _, err := buildTranslator(testConfig("deepl", "google")); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestBuildSynthesizer(t *testing.T) {
	syn, err := buildSynthesizer(testConfig("googleweb", "google"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if syn.Name() != "google" {
		t.Errorf("expected google, got %q", syn.Name())
	}

	if _, err := buildSynthesizer(testConfig("googleweb", "openai")); err == nil {
		t.Error("expected error without openai api key")
	}

	cfg := testConfig("googleweb", "openai")
	cfg.Speech.OpenAI.APIKey = "sk-test"
	syn, err = buildSynthesizer(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if syn.Name() != "openai" {
		t.Errorf("expected openai, got %q", syn.Name())
	}

	if _, err := buildSynthesizer(testConfig("googleweb", "edge")); err == nil {
		t.Error("expected error for unknown provider")
	}
}
