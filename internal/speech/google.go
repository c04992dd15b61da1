package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/valpere/linguacast/internal/chunker"
	"github.com/valpere/linguacast/internal/langcode"
)

// MaxGoogleChunk is the longest text the Translate TTS endpoint speaks in one
// request.
const MaxGoogleChunk = 100

// googleLangs are the languages Google Translate can speak.
var googleLangs = map[string]bool{
	"af": true, "am": true, "ar": true, "bg": true, "bn": true, "bs": true,
	"ca": true, "cs": true, "cy": true, "da": true, "de": true, "el": true,
	"en": true, "es": true, "et": true, "eu": true, "fi": true, "fr": true,
	"gl": true, "gu": true, "ha": true, "hi": true, "hr": true, "hu": true,
	"id": true, "is": true, "it": true, "iw": true, "ja": true, "jw": true,
	"km": true, "kn": true, "ko": true, "la": true, "lt": true, "lv": true,
	"ml": true, "mr": true, "ms": true, "my": true, "ne": true, "nl": true,
	"no": true, "pa": true, "pl": true, "pt": true, "pt-PT": true, "ro": true,
	"ru": true, "si": true, "sk": true, "sq": true, "sr": true, "su": true,
	"sv": true, "sw": true, "ta": true, "te": true, "th": true, "tl": true,
	"tr": true, "uk": true, "ur": true, "vi": true, "yue": true,
	"zh": true, "zh-CN": true, "zh-TW": true,
}

// googleAliases maps ISO codes to the legacy codes the endpoint expects.
var googleAliases = map[string]string{
	"he":  "iw",
	"jv":  "jw",
	"fil": "tl",
	"nb":  "no",
}

// GoogleSynthesizer speaks through the Google Translate TTS endpoint. Long
// text is split into pieces of at most MaxGoogleChunk runes which are fetched
// in order; the MP3 responses are concatenated.
type GoogleSynthesizer struct {
	baseURL string
	tld     string
	slow    bool
	client  *http.Client
}

// NewGoogleSynthesizer builds the adapter. baseURL overrides the endpoint
// derived from tld (e.g. "com", "co.uk").
func NewGoogleSynthesizer(baseURL, tld string, slow bool, timeout time.Duration) *GoogleSynthesizer {
	if tld == "" {
		tld = "com"
	}
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://translate.google.%s/translate_tts", tld)
	}
	return &GoogleSynthesizer{
		baseURL: baseURL,
		tld:     tld,
		slow:    slow,
		client:  &http.Client{Timeout: timeout},
	}
}

func (s *GoogleSynthesizer) Name() string {
	return "google"
}

func googleLang(code string) (string, error) {
	lang, err := langcode.Normalize(code)
	if err != nil {
		return "", err
	}
	if alias, ok := googleAliases[lang]; ok {
		lang = alias
	}
	if !googleLangs[lang] {
		return "", fmt.Errorf("Language not supported: %s", code)
	}
	return lang, nil
}

func (s *GoogleSynthesizer) Synthesize(ctx context.Context, req Request) (*Audio, error) {
	start := time.Now()

	lang, err := googleLang(req.LanguageCode)
	if err != nil {
		return nil, err
	}

	parts := chunker.Chunk(req.Text, MaxGoogleChunk)
	if len(parts) == 0 {
		return nil, fmt.Errorf("No text to speak")
	}

	var buf bytes.Buffer
	for i, part := range parts {
		if err := s.fetch(ctx, &buf, part, lang, i, len(parts)); err != nil {
			return nil, err
		}
	}

	return &Audio{
		Data:     buf.Bytes(),
		Format:   "mp3",
		Provider: s.Name(),
		Latency:  time.Since(start),
	}, nil
}

func (s *GoogleSynthesizer) fetch(ctx context.Context, w *bytes.Buffer, text, lang string, idx, total int) error {
	speed := "1"
	if s.slow {
		speed = "0.24"
	}
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("q", text)
	q.Set("tl", lang)
	q.Set("total", strconv.Itoa(total))
	q.Set("idx", strconv.Itoa(idx))
	q.Set("textlen", strconv.Itoa(utf8.RuneCountInString(text)))
	q.Set("ttsspeed", speed)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("Failed to connect. Probable cause: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%d (%s) from TTS API. Probable cause: %s",
			resp.StatusCode, http.StatusText(resp.StatusCode), s.probableCause(resp.StatusCode))
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read audio: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("No audio stream in response. Unsupported language '%s'", lang)
	}
	return nil
}

func (s *GoogleSynthesizer) probableCause(status int) string {
	switch {
	case status == http.StatusForbidden:
		return "Bad token or upstream API changes"
	case status == http.StatusNotFound && s.tld != "com":
		return fmt.Sprintf("Unsupported tld '%s'", s.tld)
	case status == http.StatusTooManyRequests:
		return "Too many requests from this IP"
	case status >= 500:
		return "Upstream API error. Try again later."
	}
	return "Unknown"
}
