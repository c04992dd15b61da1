package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/valpere/linguacast/internal/langcode"
)

const (
	defaultSystranURL = "https://api-systran-systran-translation-v1.p.rapidapi.com/translation/text/translate"
	systranHost       = "api-systran-systran-translation-v1.p.rapidapi.com"
)

type SystranService struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewSystranService(apiKey string, timeout time.Duration) *SystranService {
	return &SystranService{
		apiKey:  apiKey,
		baseURL: defaultSystranURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (s *SystranService) Name() string {
	return "systran"
}

func (s *SystranService) Translate(ctx context.Context, req Request) (*Result, error) {
	result := &Result{Provider: s.Name()}
	start := time.Now()
	defer func() { result.Latency = time.Since(start) }()

	if s.apiKey == "" {
		return result, fmt.Errorf("Systran API key required")
	}

	source, err := langcode.Normalize(req.SourceLang)
	if err != nil {
		return result, err
	}
	target, err := langcode.Normalize(req.TargetLang)
	if err != nil {
		return result, err
	}

	jsonData, err := json.Marshal(map[string]any{
		"text":   []string{req.Text},
		"source": source,
		"target": target,
		"format": "text",
	})
	if err != nil {
		return result, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(jsonData))
	if err != nil {
		return result, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-RapidAPI-Key", s.apiKey)
	httpReq.Header.Set("X-RapidAPI-Host", systranHost)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return result, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return result, fmt.Errorf("systran returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var systranResp struct {
		Outputs []struct {
			Output string `json:"output"`
			Error  string `json:"error"`
		} `json:"outputs"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&systranResp); err != nil {
		return result, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(systranResp.Outputs) == 0 {
		return result, fmt.Errorf("no translation returned")
	}
	if msg := systranResp.Outputs[0].Error; msg != "" {
		return result, fmt.Errorf("systran: %s", msg)
	}
	if systranResp.Outputs[0].Output == "" {
		return result, fmt.Errorf("no translation returned")
	}

	result.Text = systranResp.Outputs[0].Output
	return result, nil
}

func (s *SystranService) IsAvailable(ctx context.Context) error {
	if s.apiKey == "" {
		return fmt.Errorf("Systran API key not configured")
	}
	return nil
}

func (s *SystranService) SupportedLanguages(ctx context.Context) ([]string, error) {
	return []string{"en", "fr", "es", "de", "it", "pt", "ru", "zh", "ja", "ko", "ar"}, nil
}
