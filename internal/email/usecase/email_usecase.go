package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"embox-backend/internal/core"
	"embox-backend/internal/email/domain"
	"embox-backend/pkg/gemini"

	"go.uber.org/zap"
)

// maxSummarizeMessages bounds the rendered transcript; anything beyond is
// silently dropped to protect the prompt size.
const maxSummarizeMessages = 100

const summaryFallback = "No summary available."

type emailUsecase struct {
	generator TextGenerator
	logger    *zap.Logger
}

func NewEmailUsecase(generator TextGenerator, logger *zap.Logger) EmailUsecase {
	return &emailUsecase{
		generator: generator,
		logger:    logger,
	}
}

// renderThread produces the transcript fed to the model. Messages keep the
// order they were supplied in.
func renderThread(messages []domain.ThreadMessage) (string, error) {
	blocks := make([]string, 0, len(messages))
	for _, m := range messages {
		ts, err := time.Parse(time.RFC3339, m.Date)
		if err != nil {
			return "", fmt.Errorf("%w: invalid message date %q", core.ErrValidation, m.Date)
		}
		blocks = append(blocks, fmt.Sprintf("FROM: %s\nDATE: %s\nMESSAGE:\n%s",
			m.From, ts.Format("2006-01-02 15:04:05"), m.Body))
	}
	return strings.Join(blocks, "\n\n---\n\n"), nil
}

func (u *emailUsecase) GenerateReply(ctx context.Context, instruction, threadID string, messages []domain.ThreadMessage) (string, error) {
	thread, err := renderThread(messages)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("You are composing a professional reply to the following email.")
	if thread != "" {
		b.WriteString("\n\nEmail thread:\n" + thread + "\n\n")
	}
	b.WriteString("Please consider the context and write a response based on the instruction below.\n" +
		"The reply must:\n" +
		"- Match the language used in the original email (Japanese or English)\n" +
		"- Maintain a professional and respectful tone\n" +
		"- Address the sender by name if available\n" +
		"- Include no extra explanations—just the reply content\n")
	b.WriteString("\n\nUser instruction: \"" + instruction + "\"\n\n")
	b.WriteString("Write the email reply below:\n")

	u.logger.Debug("generating reply",
		zap.String("thread_id", threadID),
		zap.Int("messages", len(messages)))

	text, err := u.generator.GenerateContent(ctx, gemini.ModelFlash, b.String())
	if err != nil {
		return "", fmt.Errorf("%w: generation failed: %w", core.ErrService, err)
	}

	return strings.TrimSpace(text), nil
}

func (u *emailUsecase) Summarize(ctx context.Context, messages []domain.ThreadMessage) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("%w: no messages to summarize", core.ErrValidation)
	}
	if len(messages) > maxSummarizeMessages {
		messages = messages[:maxSummarizeMessages]
	}

	thread, err := renderThread(messages)
	if err != nil {
		return "", err
	}

	prompt := "Summarize the following email conversation in 3–5 bullet points.\n" +
		"Focus on the key points, actions, and requests. Use Japanese. " +
		"Return in plain text format and use ・ for bullet points.\n\n" +
		thread

	text, err := u.generator.GenerateContent(ctx, gemini.ModelPro, prompt)

	// An error status carries a JSON error body with no candidates, which
	// reads the same as an absent summary.
	var statusErr *gemini.StatusError
	if errors.As(err, &statusErr) {
		u.logger.Warn("summarization degraded", zap.Int("status", statusErr.StatusCode))
		return summaryFallback, nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: summarization failed: %w", core.ErrService, err)
	}

	if text == "" {
		return summaryFallback, nil
	}
	return text, nil
}
