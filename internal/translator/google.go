package translator

import (
	"context"
	"fmt"
	"html"
	"time"

	translate "cloud.google.com/go/translate"
	"golang.org/x/text/language"
	"google.golang.org/api/option"

	"github.com/valpere/linguacast/internal/langcode"
)

// GoogleService talks to the Cloud Translation v2 API. Credentials come from
// a service-account file, an API key, or Application Default Credentials.
type GoogleService struct {
	credentials string
	apiKey      string
}

func NewGoogleService(credentials, apiKey string) *GoogleService {
	return &GoogleService{credentials: credentials, apiKey: apiKey}
}

func (s *GoogleService) Name() string {
	return "google"
}

func (s *GoogleService) clientOptions() []option.ClientOption {
	var opts []option.ClientOption
	if s.credentials != "" {
		opts = append(opts, option.WithCredentialsFile(s.credentials))
	}
	if s.apiKey != "" {
		opts = append(opts, option.WithAPIKey(s.apiKey))
	}
	return opts
}

func (s *GoogleService) Translate(ctx context.Context, req Request) (*Result, error) {
	result := &Result{Provider: s.Name()}
	start := time.Now()
	defer func() { result.Latency = time.Since(start) }()

	target, err := langcode.Normalize(req.TargetLang)
	if err != nil {
		return result, err
	}
	targetTag, err := language.Parse(target)
	if err != nil {
		return result, fmt.Errorf("invalid target language: %w", err)
	}

	client, err := translate.NewClient(ctx, s.clientOptions()...)
	if err != nil {
		return result, fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	opts := &translate.Options{Format: translate.Text}
	source, err := langcode.Normalize(req.SourceLang)
	if err != nil {
		return result, err
	}
	if source != langcode.Auto {
		sourceTag, err := language.Parse(source)
		if err != nil {
			return result, fmt.Errorf("invalid source language: %w", err)
		}
		opts.Source = sourceTag
	}

	translations, err := client.Translate(ctx, []string{req.Text}, targetTag, opts)
	if err != nil {
		return result, err
	}
	if len(translations) == 0 || translations[0].Text == "" {
		return result, fmt.Errorf("no translation returned")
	}

	result.Text = html.UnescapeString(translations[0].Text)
	if source == langcode.Auto {
		result.Metadata = map[string]string{"detected_source": translations[0].Source.String()}
	}

	return result, nil
}

func (s *GoogleService) IsAvailable(ctx context.Context) error {
	return nil
}

func (s *GoogleService) SupportedLanguages(ctx context.Context) ([]string, error) {
	client, err := translate.NewClient(ctx, s.clientOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	langs, err := client.SupportedLanguages(ctx, language.English)
	if err != nil {
		return nil, err
	}
	codes := make([]string, 0, len(langs))
	for _, l := range langs {
		codes = append(codes, l.Tag.String())
	}
	return codes, nil
}
