package delivery

import (
	"net/http"
	"strconv"

	"embox-backend/internal/analysis/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AnalysisHandler struct {
	analysisUsecase usecase.AnalysisUsecase
	logger          *zap.Logger
}

func NewAnalysisHandler(analysisUsecase usecase.AnalysisUsecase, logger *zap.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		analysisUsecase: analysisUsecase,
		logger:          logger,
	}
}

// AnalyzeRequest is the POST /api/analyze-sentiment body.
type AnalyzeRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// POST /api/analyze-sentiment
//
// Responds with the score as a JSON string, e.g. "50". A degraded result is
// carried the same way, so wire compatibility is kept.
func (h *AnalysisHandler) AnalyzeSentiment(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.analysisUsecase.AnalyzeSentiment(c.Request.Context(), req.Prompt)
	if err != nil {
		h.logger.Error("sentiment analysis failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sentiment analysis failed"})
		return
	}

	c.JSON(http.StatusOK, strconv.Itoa(result.Score))
}
