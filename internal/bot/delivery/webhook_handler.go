// Package delivery receives LINE webhook batches and replies to each event.
package delivery

import (
	"context"
	"io"
	"net/http"

	"embox-backend/pkg/line"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MessagingClient is the slice of the LINE client the webhook needs.
type MessagingClient interface {
	VerifySignature(body []byte, signature string) bool
	ParseEvents(body []byte) ([]line.Event, error)
	Reply(ctx context.Context, replyToken, text string) error
}

// CommandDispatcher produces one reply for one line of chat text.
type CommandDispatcher interface {
	Dispatch(ctx context.Context, chatUserID, text string) string
}

type WebhookHandler struct {
	messaging  MessagingClient
	dispatcher CommandDispatcher
	logger     *zap.Logger
}

func NewWebhookHandler(messaging MessagingClient, dispatcher CommandDispatcher, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		messaging:  messaging,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// POST /line/webhook
//
// An invalid signature rejects the whole batch; no event of it is processed.
func (h *WebhookHandler) HandleWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
		return
	}

	signature := c.GetHeader("X-Line-Signature")
	if !h.messaging.VerifySignature(body, signature) {
		h.logger.Warn("webhook signature rejected")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
		return
	}

	events, err := h.messaging.ParseEvents(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid webhook body"})
		return
	}

	for _, event := range events {
		if event.Type != "message" || event.Message.Type != "text" {
			continue
		}

		reply := h.dispatcher.Dispatch(c.Request.Context(), event.Source.UserID, event.Message.Text)
		if err := h.messaging.Reply(c.Request.Context(), event.ReplyToken, reply); err != nil {
			h.logger.Error("failed to send reply",
				zap.String("chat_user_id", event.Source.UserID),
				zap.Error(err))
		}
	}

	c.String(http.StatusOK, "OK")
}
