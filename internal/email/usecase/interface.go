package usecase

import (
	"context"

	"embox-backend/internal/email/domain"
)

// EmailUsecase defines the Gemini-backed email operations.
type EmailUsecase interface {
	// GenerateReply composes a reply for the given instruction and prior
	// thread. threadID is passed through for correlation only.
	GenerateReply(ctx context.Context, instruction, threadID string, messages []domain.ThreadMessage) (string, error)

	// Summarize condenses a non-empty thread into bullet points. At most
	// the first 100 messages are considered.
	Summarize(ctx context.Context, messages []domain.ThreadMessage) (string, error)
}

// TextGenerator is the slice of the Gemini client this feature needs.
type TextGenerator interface {
	GenerateContent(ctx context.Context, model, prompt string) (string, error)
}
