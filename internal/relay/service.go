// Package relay validates translation and speech requests and forwards them
// to the configured provider, classifying failures for the HTTP layer.
package relay

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	"github.com/valpere/linguacast/internal/speech"
	"github.com/valpere/linguacast/internal/translator"
)

type TranslationRequest struct {
	Text     string `json:"text"`
	SrcLang  string `json:"src_lang"`
	DestLang string `json:"dest_lang"`
}

type TranslationResponse struct {
	TranslatedText string `json:"translated_text"`
}

type SpeechRequest struct {
	Text         string `json:"text"`
	LanguageCode string `json:"language_code"`
}

type SpeechResponse struct {
	// AudioContent is standard base64 with padding.
	AudioContent string `json:"audio_content"`
}

// Recorder receives one observation per provider call.
type Recorder interface {
	RecordProviderCall(kind, provider, outcome string, duration time.Duration)
}

// Service is safe for concurrent use; it holds only the provider clients.
type Service struct {
	translator  translator.Translator
	synthesizer speech.Synthesizer
	logger      *slog.Logger
	recorder    Recorder
	timeout     time.Duration
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		s.recorder = r
	}
}

// WithProviderTimeout bounds each provider call. Zero leaves calls without a
// deadline.
func WithProviderTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.timeout = d
	}
}

func NewService(t translator.Translator, syn speech.Synthesizer, opts ...Option) *Service {
	s := &Service{
		translator:  t,
		synthesizer: syn,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) TranslatorName() string {
	if s.translator == nil {
		return ""
	}
	return s.translator.Name()
}

func (s *Service) SynthesizerName() string {
	if s.synthesizer == nil {
		return ""
	}
	return s.synthesizer.Name()
}

// CheckTranslator asks the translation provider whether it can serve
// requests right now.
func (s *Service) CheckTranslator(ctx context.Context) error {
	if s.translator == nil {
		return fmt.Errorf("no translator configured")
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.translator.IsAvailable(ctx)
}

func (s *Service) TranslatorLanguages(ctx context.Context) ([]string, error) {
	if s.translator == nil {
		return nil, fmt.Errorf("no translator configured")
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	langs, err := s.translator.SupportedLanguages(ctx)
	if err != nil {
		return nil, &ProviderError{Provider: s.translator.Name(), Err: err}
	}
	return langs, nil
}

func (s *Service) Translate(ctx context.Context, req TranslationRequest) (TranslationResponse, error) {
	if req.Text == "" || req.SrcLang == "" || req.DestLang == "" {
		return TranslationResponse{}, &InputError{Message: MsgInvalidTranslation}
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	name := s.translator.Name()
	start := time.Now()
	result, err := s.translator.Translate(ctx, translator.Request{
		Text:       req.Text,
		SourceLang: req.SrcLang,
		TargetLang: req.DestLang,
	})
	s.observe("translate", name, start, err)
	if err != nil {
		return TranslationResponse{}, &ProviderError{Provider: name, Err: err}
	}

	return TranslationResponse{TranslatedText: result.Text}, nil
}

func (s *Service) Synthesize(ctx context.Context, req SpeechRequest) (SpeechResponse, error) {
	if req.Text == "" || req.LanguageCode == "" {
		return SpeechResponse{}, &InputError{Message: MsgInvalidSpeech}
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	name := s.synthesizer.Name()
	start := time.Now()
	audio, err := s.synthesizer.Synthesize(ctx, speech.Request{
		Text:         req.Text,
		LanguageCode: req.LanguageCode,
	})
	s.observe("speech", name, start, err)
	if err != nil {
		return SpeechResponse{}, &ProviderError{Provider: name, Err: err}
	}

	return SpeechResponse{AudioContent: base64.StdEncoding.EncodeToString(audio.Data)}, nil
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(ctx, s.timeout)
	}
	return ctx, func() {}
}

func (s *Service) observe(kind, provider string, start time.Time, err error) {
	elapsed := time.Since(start)
	outcome := "ok"
	if err != nil {
		outcome = "error"
		s.logger.Warn("provider call failed",
			"kind", kind,
			"provider", provider,
			"latency", elapsed,
			"error", err)
	} else {
		s.logger.Debug("provider call",
			"kind", kind,
			"provider", provider,
			"latency", elapsed)
	}
	if s.recorder != nil {
		s.recorder.RecordProviderCall(kind, provider, outcome, elapsed)
	}
}
