package line_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"embox-backend/pkg/line"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	client := line.NewClient("token", "secret", time.Second)
	body := []byte(`{"events":[]}`)

	assert.True(t, client.VerifySignature(body, sign("secret", body)))
	assert.False(t, client.VerifySignature(body, sign("other-secret", body)))
	assert.False(t, client.VerifySignature(body, "not-base64"))
	assert.False(t, client.VerifySignature(body, ""))
}

func TestParseEvents(t *testing.T) {
	client := line.NewClient("token", "secret", time.Second)

	body := []byte(`{
		"events": [
			{
				"type": "message",
				"replyToken": "rt-1",
				"source": {"type": "user", "userId": "U1"},
				"message": {"id": "m1", "type": "text", "text": "/recent"}
			},
			{
				"type": "follow",
				"replyToken": "rt-2",
				"source": {"type": "user", "userId": "U2"}
			}
		]
	}`)

	events, err := client.ParseEvents(body)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "message", events[0].Type)
	assert.Equal(t, "U1", events[0].Source.UserID)
	assert.Equal(t, "/recent", events[0].Message.Text)
	assert.Equal(t, "follow", events[1].Type)
}

func TestParseEventsInvalidBody(t *testing.T) {
	client := line.NewClient("token", "secret", time.Second)
	_, err := client.ParseEvents([]byte("not json"))
	assert.Error(t, err)
}

func TestReply(t *testing.T) {
	var gotAuth string
	var gotPayload map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/bot/message/reply", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotPayload))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := line.NewClient("channel-token", "secret", time.Second)
	client.BaseURL = server.URL

	err := client.Reply(context.Background(), "rt-1", "Sentiment score: 85")
	require.NoError(t, err)
	assert.Equal(t, "Bearer channel-token", gotAuth)
	assert.Equal(t, "rt-1", gotPayload["replyToken"])

	messages := gotPayload["messages"].([]interface{})
	require.Len(t, messages, 1)
	msg := messages[0].(map[string]interface{})
	assert.Equal(t, "text", msg["type"])
	assert.Equal(t, "Sentiment score: 85", msg["text"])
}

func TestReplyErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Invalid reply token"}`))
	}))
	defer server.Close()

	client := line.NewClient("channel-token", "secret", time.Second)
	client.BaseURL = server.URL

	err := client.Reply(context.Background(), "rt-used", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}
