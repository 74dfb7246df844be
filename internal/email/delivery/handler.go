package delivery

import (
	"errors"
	"net/http"

	"embox-backend/internal/core"
	"embox-backend/internal/email/domain"
	"embox-backend/internal/email/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type EmailHandler struct {
	emailUsecase usecase.EmailUsecase
	logger       *zap.Logger
}

func NewEmailHandler(emailUsecase usecase.EmailUsecase, logger *zap.Logger) *EmailHandler {
	return &EmailHandler{
		emailUsecase: emailUsecase,
		logger:       logger,
	}
}

// GenerateRequest is the POST /api/generate body.
type GenerateRequest struct {
	Instruction string                 `json:"instruction" binding:"required"`
	ThreadID    string                 `json:"threadId"`
	Messages    []domain.ThreadMessage `json:"messages"`
}

// POST /api/generate
func (h *EmailHandler) GenerateReply(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, err := h.emailUsecase.GenerateReply(c.Request.Context(), req.Instruction, req.ThreadID, req.Messages)
	if err != nil {
		if errors.Is(err, core.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("reply generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": reply})
}

// SummarizeRequest is the POST /api/summarize body.
type SummarizeRequest struct {
	Messages []domain.ThreadMessage `json:"messages"`
}

// POST /api/summarize
func (h *EmailHandler) Summarize(c *gin.Context) {
	var req SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := h.emailUsecase.Summarize(c.Request.Context(), req.Messages)
	if err != nil {
		if errors.Is(err, core.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No messages to summarize"})
			return
		}
		h.logger.Error("summarization failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "summarization failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
