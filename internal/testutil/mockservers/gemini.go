// Package mockservers provides httptest mock servers for external APIs.
package mockservers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// GeminiMockServer mimics the generative-language generateContent endpoint.
type GeminiMockServer struct {
	Server *httptest.Server

	mu      sync.Mutex
	calls   int
	prompts []string
	handler http.HandlerFunc
}

func NewGeminiMockServer(t *testing.T) *GeminiMockServer {
	t.Helper()

	mock := &GeminiMockServer{}
	mock.RespondText("OK")

	mock.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		var req struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		_ = json.Unmarshal(body, &req)

		mock.mu.Lock()
		mock.calls++
		if len(req.Contents) > 0 && len(req.Contents[0].Parts) > 0 {
			mock.prompts = append(mock.prompts, req.Contents[0].Parts[0].Text)
		}
		handler := mock.handler
		mock.mu.Unlock()

		handler(w, r)
	}))

	t.Cleanup(mock.Server.Close)

	return mock
}

// Calls returns how many generateContent requests were received.
func (m *GeminiMockServer) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Prompts returns the prompt text of every received request, in order.
func (m *GeminiMockServer) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// RespondText answers every request with a single candidate carrying text.
func (m *GeminiMockServer) RespondText(text string) {
	m.setHandler(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{
					"content": map[string]interface{}{
						"parts": []map[string]string{{"text": text}},
					},
				},
			},
		})
	})
}

// RespondStatus answers every request with the given status and body.
func (m *GeminiMockServer) RespondStatus(code int, body string) {
	m.setHandler(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		w.Write([]byte(body))
	})
}

// RespondRaw answers every request with a 200 and the given raw body.
func (m *GeminiMockServer) RespondRaw(body string) {
	m.setHandler(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	})
}

func (m *GeminiMockServer) setHandler(h http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handler = h
}
