package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"embox-backend/internal/core"
	"embox-backend/internal/task/domain"
	"embox-backend/pkg/gemini"

	"go.uber.org/zap"
)

// Automated-sender patterns. A message is dropped when its sender or subject
// matches any of these (case-insensitive substring).
var (
	senderFilters  = []string{"no-reply", "noreply", "promo", "newsletter", "feedback"}
	subjectFilters = []string{"promo", "unsubscribe", "verify", "reset"}
)

var codeFencePattern = regexp.MustCompile("^```(?:json)?\\s*|```$")

type taskUsecase struct {
	generator TextGenerator
	logger    *zap.Logger
}

func NewTaskUsecase(generator TextGenerator, logger *zap.Logger) TaskUsecase {
	return &taskUsecase{
		generator: generator,
		logger:    logger,
	}
}

func matchesAny(value string, patterns []string) bool {
	lowered := strings.ToLower(value)
	for _, p := range patterns {
		if strings.Contains(lowered, p) {
			return true
		}
	}
	return false
}

func filterMessages(messages []domain.TaskMessage) []domain.TaskMessage {
	kept := make([]domain.TaskMessage, 0, len(messages))
	for _, m := range messages {
		if matchesAny(m.From, senderFilters) || matchesAny(m.Subject, subjectFilters) {
			continue
		}
		kept = append(kept, m)
	}
	return kept
}

func (u *taskUsecase) ExtractTasks(ctx context.Context, messages []domain.TaskMessage) ([]domain.TaskItem, error) {
	kept := filterMessages(messages)
	if len(kept) == 0 {
		return []domain.TaskItem{}, nil
	}

	blocks := make([]string, 0, len(kept))
	for _, m := range kept {
		blocks = append(blocks, fmt.Sprintf("MESSAGE (THREAD_ID: %s):\n%s", m.ThreadID, m.Body))
	}

	prompt := "Extract tasks from the following email messages.  \n" +
		"Each message is labeled with its THREAD_ID. " +
		"Use same language as message. " +
		"For each task return JSON with keys: task, date, time, threadId.  \n" +
		"Put those with both date+time first (earliest→latest), then date-only. " +
		"Return _only_ the JSON array.\n\n" +
		strings.Join(blocks, "\n\n---\n\n")

	u.logger.Debug("extracting tasks",
		zap.Int("messages", len(messages)),
		zap.Int("kept", len(kept)))

	raw, err := u.generator.GenerateContent(ctx, gemini.ModelFlash, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: task extraction failed: %w", core.ErrService, err)
	}

	return parseTaskList(raw)
}

// parseTaskList strips surrounding code fences and decodes the JSON array,
// requiring task, date and threadId on every item (time stays optional).
func parseTaskList(raw string) ([]domain.TaskItem, error) {
	cleaned := strings.TrimSpace(codeFencePattern.ReplaceAllString(strings.TrimSpace(raw), ""))

	var items []domain.TaskItem
	if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
		return nil, fmt.Errorf("%w: failed to parse tasks JSON: %w", core.ErrParse, err)
	}

	for i, item := range items {
		if item.Task == "" || item.Date == "" || item.ThreadID == "" {
			return nil, fmt.Errorf("%w: task %d is missing required fields", core.ErrParse, i)
		}
	}

	if items == nil {
		items = []domain.TaskItem{}
	}
	return items, nil
}
