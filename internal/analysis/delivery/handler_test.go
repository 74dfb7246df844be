package delivery_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"embox-backend/internal/analysis/delivery"
	"embox-backend/internal/analysis/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubAnalysis struct {
	result domain.SentimentResult
	err    error
}

func (s *stubAnalysis) AnalyzeSentiment(ctx context.Context, text string) (domain.SentimentResult, error) {
	return s.result, s.err
}

func newAnalysisRouter(stub *stubAnalysis) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := delivery.NewAnalysisHandler(stub, zap.NewNop())
	r.POST("/api/analyze-sentiment", h.AnalyzeSentiment)
	return r
}

func TestAnalyzeSentimentEndpoint(t *testing.T) {
	r := newAnalysisRouter(&stubAnalysis{result: domain.SentimentResult{Score: 85}})

	req := httptest.NewRequest(http.MethodPost, "/api/analyze-sentiment",
		strings.NewReader(`{"prompt":"great day"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `"85"`, w.Body.String(), "the score travels as a JSON string")
}

func TestAnalyzeSentimentEndpointMissingPrompt(t *testing.T) {
	r := newAnalysisRouter(&stubAnalysis{})

	req := httptest.NewRequest(http.MethodPost, "/api/analyze-sentiment", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeSentimentEndpointFault(t *testing.T) {
	r := newAnalysisRouter(&stubAnalysis{err: errors.New("boom")})

	req := httptest.NewRequest(http.MethodPost, "/api/analyze-sentiment",
		strings.NewReader(`{"prompt":"text"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
