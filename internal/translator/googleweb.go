package translator

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/valpere/linguacast/internal/langcode"
)

const (
	defaultGoogleWebURL = "https://translate.googleapis.com/translate_a/single"

	// MaxGoogleWebChars is the longest text the public web endpoint accepts.
	MaxGoogleWebChars = 5000
)

// GoogleWebService uses the public Google Translate web endpoint. It needs no
// credentials and accepts "auto" as source language.
type GoogleWebService struct {
	baseURL string
	client  *http.Client
}

func NewGoogleWebService(baseURL string, timeout time.Duration) *GoogleWebService {
	if baseURL == "" {
		baseURL = defaultGoogleWebURL
	}
	return &GoogleWebService{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (s *GoogleWebService) Name() string {
	return "googleweb"
}

func (s *GoogleWebService) Translate(ctx context.Context, req Request) (*Result, error) {
	result := &Result{Provider: s.Name()}
	start := time.Now()
	defer func() { result.Latency = time.Since(start) }()

	if n := len([]rune(req.Text)); n > MaxGoogleWebChars {
		return result, fmt.Errorf("text must be at most %d characters, got %d", MaxGoogleWebChars, n)
	}

	source, err := langcode.Normalize(req.SourceLang)
	if err != nil {
		return result, err
	}
	target, err := langcode.Normalize(req.TargetLang)
	if err != nil {
		return result, err
	}
	if target == langcode.Auto {
		return result, fmt.Errorf("target language cannot be %q", langcode.Auto)
	}

	// Blank text and same-language pairs never reach the endpoint.
	text := strings.TrimSpace(req.Text)
	if text == "" || source == target {
		result.Text = text
		return result, nil
	}

	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", source)
	q.Set("tl", target)
	q.Set("dt", "t")
	q.Set("q", text)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return result, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return result, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return result, fmt.Errorf("google translate returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	// The endpoint answers with nested arrays:
	// [[["translated","original",...],...], null, "detected-lang", ...]
	var payload []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return result, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(payload) == 0 {
		return result, fmt.Errorf("no translation returned")
	}

	var segments [][]any
	if err := json.Unmarshal(payload[0], &segments); err != nil {
		return result, fmt.Errorf("failed to decode response: %w", err)
	}

	var sb strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		if text, ok := seg[0].(string); ok {
			sb.WriteString(text)
		}
	}
	if sb.Len() == 0 {
		return result, fmt.Errorf("no translation returned")
	}

	result.Text = sb.String()
	if len(payload) > 2 {
		var detected string
		if json.Unmarshal(payload[2], &detected) == nil && detected != "" {
			result.Metadata = map[string]string{"detected_source": detected}
		}
	}

	return result, nil
}

func (s *GoogleWebService) IsAvailable(ctx context.Context) error {
	return nil
}

func (s *GoogleWebService) SupportedLanguages(ctx context.Context) ([]string, error) {
	return []string{
		"af", "ar", "bg", "bn", "ca", "cs", "da", "de", "el", "en",
		"es", "et", "fa", "fi", "fr", "gu", "he", "hi", "hr", "hu",
		"id", "it", "ja", "kn", "ko", "lt", "lv", "ml", "mr", "ms",
		"nl", "no", "pa", "pl", "pt", "pt-PT", "ro", "ru", "sk", "sl",
		"sr", "sv", "sw", "ta", "te", "th", "tr", "uk", "ur", "vi",
		"zh-CN", "zh-TW",
	}, nil
}
