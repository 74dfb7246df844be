// Package usecase routes chat commands to the Gemini-backed operations.
package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	analysisUsecase "embox-backend/internal/analysis/usecase"
	emaildomain "embox-backend/internal/email/domain"
	emailUsecase "embox-backend/internal/email/usecase"
	taskdomain "embox-backend/internal/task/domain"
	taskUsecase "embox-backend/internal/task/usecase"

	"go.uber.org/zap"
)

const helpText = "使い方:\n" +
	"/analyze [テキスト] → 感情分析\n" +
	"/generate [指示] → メール生成\n" +
	"/summarize [JSON messages] → 要約\n" +
	"/tasks [JSON messages] → タスク抽出\n" +
	"/recent → 最新メールを取得し感情分析"

// RecentMailAnalyzer is the bulk fetch-and-analyze flow behind /recent.
type RecentMailAnalyzer interface {
	AnalyzeRecent(ctx context.Context, chatUserID string) (string, error)
}

// Dispatcher turns one line of chat text into exactly one reply string. It is
// the failure boundary for an inbound event: downstream faults become
// readable replies and never propagate.
type Dispatcher struct {
	analysis analysisUsecase.AnalysisUsecase
	email    emailUsecase.EmailUsecase
	tasks    taskUsecase.TaskUsecase
	recent   RecentMailAnalyzer
	logger   *zap.Logger
}

func NewDispatcher(
	analysis analysisUsecase.AnalysisUsecase,
	email emailUsecase.EmailUsecase,
	tasks taskUsecase.TaskUsecase,
	recent RecentMailAnalyzer,
	logger *zap.Logger,
) *Dispatcher {
	return &Dispatcher{
		analysis: analysis,
		email:    email,
		tasks:    tasks,
		recent:   recent,
		logger:   logger,
	}
}

// splitCommand separates the keyword from the argument. The keyword is
// lowercased with leading slashes stripped; the argument is what remains
// after the first whitespace run.
func splitCommand(text string) (keyword, arg string) {
	text = strings.TrimSpace(text)
	keyword = text
	if i := strings.IndexAny(text, " \t"); i >= 0 {
		keyword = text[:i]
		arg = strings.TrimLeft(text[i:], " \t")
	}
	keyword = strings.ToLower(strings.TrimLeft(keyword, "/"))
	return keyword, arg
}

func (d *Dispatcher) Dispatch(ctx context.Context, chatUserID, text string) string {
	keyword, arg := splitCommand(text)

	switch {
	case keyword == "recent" || keyword == "mail":
		reply, err := d.recent.AnalyzeRecent(ctx, chatUserID)
		if err != nil {
			d.logger.Warn("recent mail analysis failed",
				zap.String("chat_user_id", chatUserID),
				zap.Error(err))
			return "メール取得失敗: " + err.Error()
		}
		return reply

	case keyword == "analyze" && arg != "":
		result, err := d.analysis.AnalyzeSentiment(ctx, arg)
		if err != nil {
			return "解析失敗: " + err.Error()
		}
		return fmt.Sprintf("Sentiment score: %d", result.Score)

	case keyword == "generate" && arg != "":
		reply, err := d.email.GenerateReply(ctx, arg, "LINE", nil)
		if err != nil {
			return "生成失敗: " + err.Error()
		}
		return reply

	case keyword == "summarize" && arg != "":
		var messages []emaildomain.ThreadMessage
		if err := json.Unmarshal([]byte(arg), &messages); err != nil {
			return "要約失敗: " + err.Error()
		}
		summary, err := d.email.Summarize(ctx, messages)
		if err != nil {
			return "要約失敗: " + err.Error()
		}
		return summary

	case keyword == "tasks" && arg != "":
		var messages []taskdomain.TaskMessage
		if err := json.Unmarshal([]byte(arg), &messages); err != nil {
			return "タスク抽出失敗: " + err.Error()
		}
		items, err := d.tasks.ExtractTasks(ctx, messages)
		if err != nil {
			return "タスク抽出失敗: " + err.Error()
		}
		if len(items) == 0 {
			return "タスクが見つかりませんでした。"
		}
		lines := make([]string, 0, len(items))
		for _, t := range items {
			lines = append(lines, fmt.Sprintf("・%s (%s %s)", t.Task, t.Date, t.Time))
		}
		return strings.Join(lines, "\n")

	default:
		return helpText
	}
}
