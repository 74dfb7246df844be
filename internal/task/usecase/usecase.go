package usecase

import (
	"context"

	"embox-backend/internal/task/domain"
)

// TaskUsecase extracts action items from email messages.
type TaskUsecase interface {
	// ExtractTasks filters out automated senders, then asks the model for
	// a JSON array of tasks. An all-filtered input yields an empty list
	// without any remote call.
	ExtractTasks(ctx context.Context, messages []domain.TaskMessage) ([]domain.TaskItem, error)
}

// TextGenerator is the slice of the Gemini client this feature needs.
type TextGenerator interface {
	GenerateContent(ctx context.Context, model, prompt string) (string, error)
}
