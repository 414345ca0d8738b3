package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"converse-backend/internal/infra/logger"
)

const translateTTSURL = "https://translate.google.com/translate_tts"

// GTTSProvider synthesizes speech through the Google Translate TTS endpoint
// and returns the raw MP3 bytes.
type GTTSProvider struct {
	Logger  *logger.Logger
	BaseURL string
	client  *http.Client
}

func NewGTTSProvider(log *logger.Logger, baseURL string, timeout time.Duration) *GTTSProvider {
	if baseURL == "" {
		baseURL = translateTTSURL
	}

	return &GTTSProvider{
		Logger:  log,
		BaseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (sp *GTTSProvider) Synthesize(ctx context.Context, text string, languageCode string) ([]byte, error) {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("q", text)
	q.Set("tl", languageCode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sp.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, &UpstreamError{Stage: StageSynthesis, Err: err}
	}

	resp, err := sp.client.Do(req)
	if err != nil {
		sp.Logger.Error(fmt.Sprintf("Speech synthesis request failed: %v", err))
		return nil, &UpstreamError{Stage: StageSynthesis, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("speech endpoint returned status %d", resp.StatusCode)
		sp.Logger.Error(err.Error())
		return nil, &UpstreamError{Stage: StageSynthesis, Err: err}
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Stage: StageSynthesis, Err: err}
	}
	if len(audio) == 0 {
		return nil, &UpstreamError{Stage: StageSynthesis, Err: errors.New("speech endpoint returned empty body")}
	}

	return audio, nil
}
