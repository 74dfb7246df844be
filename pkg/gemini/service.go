// Package gemini is a thin client for the Google generative-language REST API.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// ModelPro handles analysis and summarization.
	ModelPro = "gemini-1.5-pro"
	// ModelFlash handles reply generation and task extraction.
	ModelFlash = "gemini-2.0-flash"
)

// StatusError is returned when the API answers with a non-2xx status.
// Callers that degrade instead of failing match on it with errors.As.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gemini API status %d: %s", e.StatusCode, e.Body)
}

type Service struct {
	APIKey  string
	BaseURL string
	client  *http.Client
}

func NewService(apiKey string, timeout time.Duration) *Service {
	return &Service{
		APIKey:  apiKey,
		BaseURL: defaultBaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateContent sends a single-turn prompt to the given model and returns
// the first candidate's text. A missing candidate yields an empty string, not
// an error; a non-2xx status yields a *StatusError.
func (s *Service) GenerateContent(ctx context.Context, model, prompt string) (string, error) {
	url := fmt.Sprintf("%s/models/%s:generateContent", s.BaseURL, model)

	payload := generateRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: prompt}}},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call gemini: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var result generateResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}
