package speech

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultOpenAIModel = string(openai.TTSModel1)
	defaultOpenAIVoice = string(openai.VoiceAlloy)
)

// OpenAISynthesizer uses the OpenAI /audio/speech endpoint. The voice decides
// the accent; the request language code is not sent.
type OpenAISynthesizer struct {
	apiKey string
	model  string
	voice  string
	client *openai.Client
}

func NewOpenAISynthesizer(apiKey, baseURL, model, voice string, timeout time.Duration) *OpenAISynthesizer {
	if model == "" {
		model = defaultOpenAIModel
	}
	if voice == "" {
		voice = defaultOpenAIVoice
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}

	return &OpenAISynthesizer{
		apiKey: apiKey,
		model:  model,
		voice:  voice,
		client: openai.NewClientWithConfig(cfg),
	}
}

func (s *OpenAISynthesizer) Name() string {
	return "openai"
}

func (s *OpenAISynthesizer) Synthesize(ctx context.Context, req Request) (*Audio, error) {
	start := time.Now()

	if s.apiKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	resp, err := s.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(s.model),
		Input:          req.Text,
		Voice:          openai.SpeechVoice(s.voice),
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Close()

	data, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("openai returned no audio")
	}

	return &Audio{
		Data:     data,
		Format:   "mp3",
		Provider: s.Name(),
		Latency:  time.Since(start),
	}, nil
}
