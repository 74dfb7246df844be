package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	analysisdomain "embox-backend/internal/analysis/domain"
	analysisUsecase "embox-backend/internal/analysis/usecase"
	"embox-backend/internal/auth/repository"
	"embox-backend/internal/core"
	emaildomain "embox-backend/internal/email/domain"

	"go.uber.org/zap"
)

// recentMailCount bounds how many messages one /recent invocation fetches.
const recentMailCount = 3

// MailFetcher is the slice of the Gmail client the orchestrator needs.
type MailFetcher interface {
	FetchRecent(ctx context.Context, accessToken string, maxResults int64) ([]emaildomain.EmailSummary, error)
}

// Orchestrator resolves a chat user's credential, fetches recent mail and
// analyzes every message concurrently.
type Orchestrator struct {
	creds    repository.CredentialRepository
	mail     MailFetcher
	analysis analysisUsecase.AnalysisUsecase
	baseURL  string
	logger   *zap.Logger
}

func NewOrchestrator(
	creds repository.CredentialRepository,
	mail MailFetcher,
	analysis analysisUsecase.AnalysisUsecase,
	baseURL string,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		creds:    creds,
		mail:     mail,
		analysis: analysis,
		baseURL:  strings.TrimRight(baseURL, "/"),
		logger:   logger,
	}
}

// AnalyzeRecent produces one reply line per fetched message. A missing
// credential is not a fault: the reply is a login prompt and the mailbox is
// never touched. One message's analysis failing never aborts the others.
func (o *Orchestrator) AnalyzeRecent(ctx context.Context, chatUserID string) (string, error) {
	accessToken, ok, err := o.creds.Get(chatUserID)
	if err != nil {
		return "", fmt.Errorf("look up credential: %w", err)
	}
	if !ok {
		loginURL := fmt.Sprintf("%s/api/auth/login?userId=%s", o.baseURL, url.QueryEscape(chatUserID))
		return "まずはGmail認証が必要です: " + loginURL, nil
	}

	emails, err := o.mail.FetchRecent(ctx, accessToken, recentMailCount)
	if err != nil {
		return "", fmt.Errorf("fetch recent mail: %w", err)
	}

	type outcome struct {
		idx    int
		result analysisdomain.SentimentResult
		err    error
	}

	ch := make(chan outcome, len(emails))
	for i, e := range emails {
		go func(idx int, body string) {
			result, err := o.analysis.AnalyzeSentiment(ctx, body)
			ch <- outcome{idx: idx, result: result, err: err}
		}(i, e.Body)
	}

	// Join all outcomes; a fault in one never cancels its siblings.
	results := make([]outcome, len(emails))
	for range emails {
		out := <-ch
		results[out.idx] = out
	}

	lines := make([]string, 0, len(emails))
	for i, e := range emails {
		var scoreText string
		switch out := results[i]; {
		case out.err != nil && core.IsTimeout(out.err):
			scoreText = "解析タイムアウト"
		case out.err != nil:
			o.logger.Warn("message analysis failed",
				zap.String("chat_user_id", chatUserID),
				zap.Error(out.err))
			scoreText = "解析エラー: " + out.err.Error()
		default:
			scoreText = strconv.Itoa(out.result.Score)
		}
		lines = append(lines, fmt.Sprintf("%s／%s → %s", e.From, e.Subject, scoreText))
	}

	return strings.Join(lines, "\n"), nil
}
