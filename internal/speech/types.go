// Package speech adapts external text-to-speech providers to one
// Synthesizer interface returning fully buffered audio.
package speech

import (
	"context"
	"time"
)

type Request struct {
	Text         string `json:"text"`
	LanguageCode string `json:"language_code"`
}

// Audio is a complete synthesized clip.
type Audio struct {
	Data     []byte        `json:"-"`
	Format   string        `json:"format"` // e.g. "mp3"
	Provider string        `json:"provider"`
	Latency  time.Duration `json:"latency"`
}

type Synthesizer interface {
	Name() string
	Synthesize(ctx context.Context, req Request) (*Audio, error)
}
