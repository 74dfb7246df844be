package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"embox-backend/internal/core"
	"embox-backend/internal/task/domain"
	"embox-backend/internal/task/usecase"
	"embox-backend/internal/testutil/mockservers"
	"embox-backend/pkg/gemini"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTaskFixture(t *testing.T) (usecase.TaskUsecase, *mockservers.GeminiMockServer) {
	t.Helper()
	mock := mockservers.NewGeminiMockServer(t)
	svc := gemini.NewService("test-key", 5*time.Second)
	svc.BaseURL = mock.Server.URL
	return usecase.NewTaskUsecase(svc, zap.NewNop()), mock
}

func taskMessage(threadID, from, subject, body string) domain.TaskMessage {
	return domain.TaskMessage{ThreadID: threadID, From: from, Subject: subject, Body: body}
}

func TestExtractTasksFiltersAutomatedSenders(t *testing.T) {
	uc, mock := newTaskFixture(t)
	mock.RespondText(`[{"task":"review","date":"2025-03-07","threadId":"t-1"}]`)

	messages := []domain.TaskMessage{
		taskMessage("t-1", "alice@example.com", "project review", "please review by Friday"),
		taskMessage("t-2", "noreply@shop.example", "your order", "shipped"),
		taskMessage("t-3", "Weekly Newsletter <news@example.com>", "digest", "news"),
		taskMessage("t-4", "bob@example.com", "Please verify your account", "click here"),
		taskMessage("t-5", "carol@example.com", "UNSUBSCRIBE info", "bye"),
	}

	_, err := uc.ExtractTasks(context.Background(), messages)
	require.NoError(t, err)

	prompts := mock.Prompts()
	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0], "THREAD_ID: t-1")
	assert.NotContains(t, prompts[0], "t-2")
	assert.NotContains(t, prompts[0], "t-3")
	assert.NotContains(t, prompts[0], "t-4")
	assert.NotContains(t, prompts[0], "t-5")
}

func TestExtractTasksAllFilteredSkipsModel(t *testing.T) {
	uc, mock := newTaskFixture(t)

	messages := []domain.TaskMessage{
		taskMessage("t-1", "promo@shop.example", "sale", "buy now"),
		taskMessage("t-2", "team@example.com", "password reset", "reset link"),
	}

	items, err := uc.ExtractTasks(context.Background(), messages)
	require.NoError(t, err)
	assert.Equal(t, []domain.TaskItem{}, items)
	assert.Equal(t, 0, mock.Calls(), "fully filtered input must not reach the model")
}

func TestExtractTasksStripsCodeFences(t *testing.T) {
	uc, mock := newTaskFixture(t)
	mock.RespondText("```json\n[{\"task\":\"submit report\",\"date\":\"2025-03-07\",\"time\":\"14:00\",\"threadId\":\"t-1\"}]\n```")

	items, err := uc.ExtractTasks(context.Background(), []domain.TaskMessage{
		taskMessage("t-1", "alice@example.com", "report", "submit by Friday 2pm"),
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, domain.TaskItem{
		Task:     "submit report",
		Date:     "2025-03-07",
		Time:     "14:00",
		ThreadID: "t-1",
	}, items[0])
}

func TestExtractTasksInvalidJSON(t *testing.T) {
	uc, mock := newTaskFixture(t)
	mock.RespondText("I could not find any tasks, sorry.")

	_, err := uc.ExtractTasks(context.Background(), []domain.TaskMessage{
		taskMessage("t-1", "alice@example.com", "report", "body"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrParse))
}

func TestExtractTasksMissingRequiredField(t *testing.T) {
	uc, mock := newTaskFixture(t)
	mock.RespondText(`[{"task":"review","time":"10:00","threadId":"t-1"}]`)

	_, err := uc.ExtractTasks(context.Background(), []domain.TaskMessage{
		taskMessage("t-1", "alice@example.com", "report", "body"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrParse))
}

func TestExtractTasksServiceFault(t *testing.T) {
	uc, mock := newTaskFixture(t)
	mock.RespondStatus(500, `{"error":{"code":500}}`)

	_, err := uc.ExtractTasks(context.Background(), []domain.TaskMessage{
		taskMessage("t-1", "alice@example.com", "report", "body"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrService))
}
