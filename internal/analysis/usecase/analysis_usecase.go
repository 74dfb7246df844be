package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"embox-backend/internal/analysis/domain"
	"embox-backend/internal/core"
	"embox-backend/pkg/gemini"

	"go.uber.org/zap"
)

// degradedScore is the neutral midpoint substituted when the model answers
// with a non-2xx status. Known ambiguity: it is indistinguishable from a
// genuine neutral rating except through the Degraded flag.
const degradedScore = 50

var scorePattern = regexp.MustCompile(`\d{1,3}`)

// AnalysisUsecase rates the sentiment of arbitrary text.
type AnalysisUsecase interface {
	AnalyzeSentiment(ctx context.Context, text string) (domain.SentimentResult, error)
}

// TextGenerator is the slice of the Gemini client this feature needs.
type TextGenerator interface {
	GenerateContent(ctx context.Context, model, prompt string) (string, error)
}

type analysisUsecase struct {
	generator TextGenerator
	logger    *zap.Logger
}

func NewAnalysisUsecase(generator TextGenerator, logger *zap.Logger) AnalysisUsecase {
	return &analysisUsecase{
		generator: generator,
		logger:    logger,
	}
}

// AnalyzeSentiment forwards the text as a single-turn prompt and extracts the
// first 1-3 digit run from the response. A non-2xx status from the model is
// not a fault: the result degrades to the neutral midpoint. Transport faults
// and malformed response bodies are errors.
func (u *analysisUsecase) AnalyzeSentiment(ctx context.Context, text string) (domain.SentimentResult, error) {
	response, err := u.generator.GenerateContent(ctx, gemini.ModelPro, text)

	var statusErr *gemini.StatusError
	if errors.As(err, &statusErr) {
		u.logger.Warn("sentiment analysis degraded", zap.Int("status", statusErr.StatusCode))
		return domain.SentimentResult{Score: degradedScore, Degraded: true}, nil
	}
	if err != nil {
		return domain.SentimentResult{}, fmt.Errorf("%w: sentiment analysis failed: %w", core.ErrService, err)
	}

	score := degradedScore
	if m := scorePattern.FindString(response); m != "" {
		score, _ = strconv.Atoi(m)
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return domain.SentimentResult{Score: score}, nil
}
