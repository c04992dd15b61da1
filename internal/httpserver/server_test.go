package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/valpere/linguacast/internal/observability"
	"github.com/valpere/linguacast/internal/relay"
	"github.com/valpere/linguacast/internal/speech"
	"github.com/valpere/linguacast/internal/translator"
)

type echoTranslator struct {
	err         error
	unavailable error
	calls       int
}

func (e *echoTranslator) Name() string { return "echo" }

func (e *echoTranslator) Translate(_ context.Context, req translator.Request) (*translator.Result, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	return &translator.Result{Provider: "echo", Text: req.Text}, nil
}

func (e *echoTranslator) IsAvailable(context.Context) error { return e.unavailable }

func (e *echoTranslator) SupportedLanguages(context.Context) ([]string, error) { return nil, nil }

type fixedSynthesizer struct {
	err   error
	calls int
}

func (f *fixedSynthesizer) Name() string { return "fixed" }

func (f *fixedSynthesizer) Synthesize(_ context.Context, _ speech.Request) (*speech.Audio, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &speech.Audio{Data: []byte("AUDIO"), Format: "mp3", Provider: "fixed"}, nil
}

type panicSynthesizer struct{}

func (panicSynthesizer) Name() string { return "panic" }

func (panicSynthesizer) Synthesize(context.Context, speech.Request) (*speech.Audio, error) {
	panic("boom")
}

func newTestServer(t *testing.T, tr translator.Translator, syn speech.Synthesizer, metrics *observability.Metrics) *Server {
	t.Helper()
	srv, err := New(relay.NewService(tr, syn), Options{
		Metrics:   metrics,
		AccessLog: io.Discard,
	})
	require.NoError(t, err)
	return srv
}

func do(t *testing.T, srv *Server, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &payload), string(raw))
	}
	return resp, payload
}

func requireJSON(t *testing.T, resp *http.Response) {
	t.Helper()
	require.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json"),
		"content type %q", resp.Header.Get("Content-Type"))
}

func TestTranslateMissingFields(t *testing.T) {
	bodies := []string{
		`{"src_lang":"en","dest_lang":"fr"}`,
		`{"text":"hello","dest_lang":"fr"}`,
		`{"text":"hello","src_lang":"en"}`,
		`{"text":"","src_lang":"en","dest_lang":"fr"}`,
		`{"text":null,"src_lang":"en","dest_lang":"fr"}`,
		`{}`,
		`[]`,
		`not json`,
		``,
	}

	for _, body := range bodies {
		tr := &echoTranslator{}
		srv := newTestServer(t, tr, &fixedSynthesizer{}, nil)

		resp, payload := do(t, srv, http.MethodPost, "/translate", body)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode, "body %q", body)
		requireJSON(t, resp)
		require.Equal(t, "Invalid input", payload["error"])
		require.Zero(t, tr.calls)
	}
}

func TestSpeechMissingFields(t *testing.T) {
	bodies := []string{
		`{"language_code":"en"}`,
		`{"text":"hello"}`,
		`{"text":"hello","language_code":""}`,
		`{"text":5,"language_code":"en"}`,
		`not json`,
	}

	for _, body := range bodies {
		syn := &fixedSynthesizer{}
		srv := newTestServer(t, &echoTranslator{}, syn, nil)

		resp, payload := do(t, srv, http.MethodPost, "/text-to-speech", body)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode, "body %q", body)
		requireJSON(t, resp)
		require.Equal(t, "Missing text or language code", payload["error"])
		require.Zero(t, syn.calls)
	}
}

func TestTranslateEcho(t *testing.T) {
	srv := newTestServer(t, &echoTranslator{}, &fixedSynthesizer{}, nil)

	resp, payload := do(t, srv, http.MethodPost, "/translate", `{"text":"hello","src_lang":"en","dest_lang":"en"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	requireJSON(t, resp)
	require.Equal(t, map[string]any{"translated_text": "hello"}, payload)
}

func TestSpeechFixedAudio(t *testing.T) {
	srv := newTestServer(t, &echoTranslator{}, &fixedSynthesizer{}, nil)

	resp, payload := do(t, srv, http.MethodPost, "/text-to-speech", `{"text":"hello","language_code":"en"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	requireJSON(t, resp)
	require.Equal(t, map[string]any{"audio_content": "QVVESU8="}, payload)
}

func TestProviderFailures(t *testing.T) {
	srv := newTestServer(t,
		&echoTranslator{err: errors.New("Request exception can happen due to an api connection error")},
		&fixedSynthesizer{err: errors.New("Language not supported: xx")},
		nil)

	resp, payload := do(t, srv, http.MethodPost, "/translate", `{"text":"hello","src_lang":"en","dest_lang":"fr"}`)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	requireJSON(t, resp)
	require.Equal(t, "Request exception can happen due to an api connection error", payload["error"])

	resp, payload = do(t, srv, http.MethodPost, "/text-to-speech", `{"text":"hello","language_code":"xx"}`)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	requireJSON(t, resp)
	require.Equal(t, "Language not supported: xx", payload["error"])
}

func TestPanicIsRecovered(t *testing.T) {
	srv := newTestServer(t, &echoTranslator{}, panicSynthesizer{}, nil)

	resp, payload := do(t, srv, http.MethodPost, "/text-to-speech", `{"text":"hello","language_code":"en"}`)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	requireJSON(t, resp)
	require.Equal(t, "boom", payload["error"])
}

func TestUnknownRoute(t *testing.T) {
	srv := newTestServer(t, &echoTranslator{}, &fixedSynthesizer{}, nil)

	resp, payload := do(t, srv, http.MethodGet, "/nope", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	requireJSON(t, resp)
	require.NotEmpty(t, payload["error"])
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, &echoTranslator{}, &fixedSynthesizer{}, nil)

	resp, payload := do(t, srv, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	requireJSON(t, resp)
	require.Equal(t, map[string]any{"status": "ok", "translator": "echo", "synthesizer": "fixed"}, payload)
}

func TestHealthDeep(t *testing.T) {
	srv := newTestServer(t, &echoTranslator{}, &fixedSynthesizer{}, nil)

	resp, payload := do(t, srv, http.MethodGet, "/healthz?deep=1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, map[string]any{
		"status":               "ok",
		"translator":           "echo",
		"synthesizer":          "fixed",
		"translator_available": true,
	}, payload)
}

func TestHealthDeepUnavailable(t *testing.T) {
	tr := &echoTranslator{unavailable: errors.New("ollama not available: connection refused")}
	srv := newTestServer(t, tr, &fixedSynthesizer{}, nil)

	resp, payload := do(t, srv, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotContains(t, payload, "translator_available")

	resp, payload = do(t, srv, http.MethodGet, "/healthz?deep=true", "")
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	requireJSON(t, resp)
	require.Equal(t, "degraded", payload["status"])
	require.Equal(t, false, payload["translator_available"])
	require.Equal(t, "ollama not available: connection refused", payload["translator_error"])
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, &echoTranslator{}, &fixedSynthesizer{}, nil)

	req := httptest.NewRequest(http.MethodOptions, "/translate", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := srv.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	require.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "POST")
}

func TestCORSSimpleRequest(t *testing.T) {
	srv := newTestServer(t, &echoTranslator{}, &fixedSynthesizer{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/translate", strings.NewReader(`{"text":"a","src_lang":"en","dest_lang":"de"}`))
	req.Header.Set("Origin", "http://example.com")

	resp, err := srv.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	metrics, err := observability.New()
	require.NoError(t, err)
	srv := newTestServer(t, &echoTranslator{}, &fixedSynthesizer{}, metrics)

	resp, _ := do(t, srv, http.MethodPost, "/translate", `{"text":"hello","src_lang":"en","dest_lang":"en"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	mresp, err := srv.App().Test(req, -1)
	require.NoError(t, err)
	defer mresp.Body.Close()

	body, err := io.ReadAll(mresp.Body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, mresp.StatusCode)
	require.Contains(t, string(body), `linguacast_http_requests_total{method="POST",route="/translate",status="200"} 1`)
}

func TestMetricsUnknownPaths(t *testing.T) {
	metrics, err := observability.New()
	require.NoError(t, err)
	srv := newTestServer(t, &echoTranslator{}, &fixedSynthesizer{}, metrics)

	for i := 0; i < 3; i++ {
		resp, _ := do(t, srv, http.MethodGet, fmt.Sprintf("/random-%d", i), "")
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	}

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		mresp, err := srv.App().Test(req, -1)
		require.NoError(t, err)
		body, err := io.ReadAll(mresp.Body)
		mresp.Body.Close()
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, mresp.StatusCode, string(body))
		require.Contains(t, string(body), `linguacast_http_requests_total{method="GET",route="unmatched",status="404"} 3`)
		require.NotContains(t, string(body), "/random-")
	}

	_, err = metrics.Registry().Gather()
	require.NoError(t, err)
}

func TestNewRequiresService(t *testing.T) {
	_, err := New(nil, Options{})
	require.Error(t, err)
}
