package translator

import (
	"context"
	"time"
)

type Request struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

type Result struct {
	Provider string            `json:"provider"`
	Text     string            `json:"text"`
	Metadata map[string]string `json:"metadata,omitempty"`
	Latency  time.Duration     `json:"latency"`
}

// Translator is a single external translation provider. Implementations
// return the provider's own failure message in the error so callers can
// surface it unchanged.
type Translator interface {
	Name() string
	Translate(ctx context.Context, req Request) (*Result, error)
	IsAvailable(ctx context.Context) error
	SupportedLanguages(ctx context.Context) ([]string, error)
}
