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
	"github.com/valpere/linguacast/internal/placeholder"
	"github.com/valpere/linguacast/internal/postprocess"
)

const (
	defaultOllamaURL   = "http://localhost:11434"
	defaultOllamaModel = "llama3.2"
)

// OllamaTranslator prompts a self-hosted LLM for the translation.
type OllamaTranslator struct {
	baseURL string
	model   string
	client  *http.Client
}

func NewOllamaTranslator(baseURL, model string, timeout time.Duration) *OllamaTranslator {
	if baseURL == "" {
		baseURL = defaultOllamaURL
	}
	if model == "" {
		model = defaultOllamaModel
	}
	return &OllamaTranslator{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

func (s *OllamaTranslator) Name() string {
	return "ollama"
}

// buildPrompt returns the user prompt and the markup shielded from the model.
func buildPrompt(req Request) (string, *placeholder.Set) {
	source := req.SourceLang
	if source == "" || strings.EqualFold(source, langcode.Auto) {
		source = "the detected language"
	}
	text, set := placeholder.Protect(req.Text)
	hint := ""
	if set.Len() > 0 {
		hint = "\n" + placeholder.Hint
	}
	return fmt.Sprintf(`Translate the following text from %s to %s.
Only respond with the translation, nothing else.%s

Text: "%s"

Translation:`, source, req.TargetLang, hint, text), set
}

// finishLLMOutput cleans model chatter and restores shielded markup.
func finishLLMOutput(result *Result, raw string, set *placeholder.Set) {
	text := postprocess.Clean(raw)
	if missing := set.Missing(text); len(missing) > 0 {
		result.Metadata["dropped_markup"] = fmt.Sprint(len(missing))
	}
	result.Text = set.Restore(text)
}

func (s *OllamaTranslator) Translate(ctx context.Context, req Request) (*Result, error) {
	result := &Result{Provider: s.Name()}
	start := time.Now()
	defer func() { result.Latency = time.Since(start) }()

	prompt, set := buildPrompt(req)
	jsonData, err := json.Marshal(map[string]any{
		"model":  s.model,
		"prompt": prompt,
		"stream": false,
	})
	if err != nil {
		return result, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/generate", bytes.NewReader(jsonData))
	if err != nil {
		return result, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return result, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return result, fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var ollamaResp struct {
		Response string `json:"response"`
		Error    string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ollamaResp); err != nil {
		return result, fmt.Errorf("failed to decode response: %w", err)
	}
	if ollamaResp.Error != "" {
		return result, fmt.Errorf("ollama: %s", ollamaResp.Error)
	}

	result.Metadata = map[string]string{"model": s.model}
	finishLLMOutput(result, ollamaResp.Response, set)
	if result.Text == "" {
		return result, fmt.Errorf("no translation returned")
	}

	return result, nil
}

func (s *OllamaTranslator) IsAvailable(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/tags", nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("ollama not available: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}
	return nil
}

func (s *OllamaTranslator) SupportedLanguages(ctx context.Context) ([]string, error) {
	return []string{"en", "es", "fr", "de", "it", "pt", "ru", "zh-CN", "ja", "ko", "ar", "hi", "uk"}, nil
}
