// Package tts wraps an opaque text-to-speech service. Synthesis failure is
// always non-fatal to callers.
package tts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Synthesizer turns text into audio bytes.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, lang string) ([]byte, error)
}

// DefaultEndpoint is the public translate TTS endpoint.
const DefaultEndpoint = "https://translate.google.com/translate_tts"

// HTTPSynthesizer calls a translate_tts-compatible endpoint.
type HTTPSynthesizer struct {
	endpoint string
	client   *http.Client
}

func NewHTTPSynthesizer(endpoint string) *HTTPSynthesizer {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &HTTPSynthesizer{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *HTTPSynthesizer) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("tl", lang)
	q.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tts request: unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
