package translator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/valpere/linguacast/internal/langcode"
)

const defaultMyMemoryURL = "https://api.mymemory.translated.net/get"

// LanguageDetector resolves "auto" for providers that need an explicit source.
type LanguageDetector interface {
	DetectISO(text string) (string, bool)
}

type MyMemoryService struct {
	baseURL  string
	email    string
	detector LanguageDetector
	client   *http.Client
}

// NewMyMemoryService builds the MyMemory adapter. detector may be nil, in
// which case "auto" falls back to English.
func NewMyMemoryService(email string, detector LanguageDetector, timeout time.Duration) *MyMemoryService {
	return &MyMemoryService{
		baseURL:  defaultMyMemoryURL,
		email:    email,
		detector: detector,
		client:   &http.Client{Timeout: timeout},
	}
}

func (s *MyMemoryService) Name() string {
	return "mymemory"
}

func (s *MyMemoryService) sourceLang(req Request) (string, error) {
	source, err := langcode.Normalize(req.SourceLang)
	if err != nil {
		return "", err
	}
	if source != langcode.Auto {
		return source, nil
	}
	if s.detector != nil {
		if detected, ok := s.detector.DetectISO(req.Text); ok {
			return detected, nil
		}
	}
	return "en", nil
}

func (s *MyMemoryService) Translate(ctx context.Context, req Request) (*Result, error) {
	result := &Result{Provider: s.Name()}
	start := time.Now()
	defer func() { result.Latency = time.Since(start) }()

	source, err := s.sourceLang(req)
	if err != nil {
		return result, err
	}
	target, err := langcode.Normalize(req.TargetLang)
	if err != nil {
		return result, err
	}

	q := url.Values{}
	q.Set("q", req.Text)
	q.Set("langpair", source+"|"+target)
	if s.email != "" {
		q.Set("de", s.email)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return result, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return result, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var mymemResp struct {
		ResponseData struct {
			TranslatedText string  `json:"translatedText"`
			Match          float64 `json:"match"`
		} `json:"responseData"`
		// MyMemory reports the status as a number on success and as a
		// string on some quota errors.
		ResponseStatus  json.Number `json:"responseStatus"`
		ResponseDetails string      `json:"responseDetails"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&mymemResp); err != nil {
		return result, fmt.Errorf("failed to decode response: %w", err)
	}

	if mymemResp.ResponseStatus.String() != "200" {
		return result, fmt.Errorf("MyMemory API error: %s (%s)", mymemResp.ResponseDetails, mymemResp.ResponseStatus)
	}
	if mymemResp.ResponseData.TranslatedText == "" {
		return result, fmt.Errorf("no translation returned")
	}

	result.Text = mymemResp.ResponseData.TranslatedText
	result.Metadata = map[string]string{
		"source": source,
		"match":  fmt.Sprintf("%.2f", mymemResp.ResponseData.Match),
	}

	return result, nil
}

func (s *MyMemoryService) IsAvailable(ctx context.Context) error {
	return nil
}

func (s *MyMemoryService) SupportedLanguages(ctx context.Context) ([]string, error) {
	return []string{
		"en", "es", "fr", "de", "it", "pt", "ru", "ja", "ko", "zh-CN",
		"ar", "nl", "pl", "tr", "sv", "da", "no", "fi", "el", "he",
		"th", "vi", "id", "ms", "cs", "hu", "ro", "uk", "bg", "ca",
		"hi", "bn",
	}, nil
}
