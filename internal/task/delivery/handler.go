package delivery

import (
	"errors"
	"net/http"

	"embox-backend/internal/core"
	"embox-backend/internal/task/domain"
	"embox-backend/internal/task/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TaskHandler struct {
	taskUsecase usecase.TaskUsecase
	logger      *zap.Logger
}

func NewTaskHandler(taskUsecase usecase.TaskUsecase, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		taskUsecase: taskUsecase,
		logger:      logger,
	}
}

// ExtractTasksRequest is the POST /api/tasks body.
type ExtractTasksRequest struct {
	Messages []domain.TaskMessage `json:"messages"`
}

// POST /api/tasks
func (h *TaskHandler) ExtractTasks(c *gin.Context) {
	var req ExtractTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, err := h.taskUsecase.ExtractTasks(c.Request.Context(), req.Messages)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrParse):
			h.logger.Error("task extraction produced malformed JSON", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse tasks JSON"})
		case errors.Is(err, core.ErrService):
			h.logger.Error("task extraction service call failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Gemini API error"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "task extraction failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": items})
}
