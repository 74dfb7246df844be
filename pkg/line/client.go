// Package line is a minimal client for the LINE Messaging API: webhook
// signature verification, event decoding and the reply endpoint.
package line

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.line.me"

// Event is one entry of a webhook batch.
type Event struct {
	Type       string `json:"type"`
	ReplyToken string `json:"replyToken"`
	Source     struct {
		Type   string `json:"type"`
		UserID string `json:"userId"`
	} `json:"source"`
	Message struct {
		ID   string `json:"id"`
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"message"`
}

type webhookBody struct {
	Events []Event `json:"events"`
}

type Client struct {
	ChannelToken  string
	ChannelSecret string
	BaseURL       string
	client        *http.Client
}

func NewClient(channelToken, channelSecret string, timeout time.Duration) *Client {
	return &Client{
		ChannelToken:  channelToken,
		ChannelSecret: channelSecret,
		BaseURL:       defaultBaseURL,
		client:        &http.Client{Timeout: timeout},
	}
}

// VerifySignature checks the X-Line-Signature header against the raw body.
func (c *Client) VerifySignature(body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(c.ChannelSecret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// ParseEvents decodes a webhook batch body.
func (c *Client) ParseEvents(body []byte) ([]Event, error) {
	var payload webhookBody
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode webhook body: %w", err)
	}
	return payload.Events, nil
}

type replyRequest struct {
	ReplyToken string         `json:"replyToken"`
	Messages   []replyMessage `json:"messages"`
}

type replyMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Reply sends one text message through the reply API. The reply token is
// one-time use and tied to the inbound event.
func (c *Client) Reply(ctx context.Context, replyToken, text string) error {
	payload := replyRequest{
		ReplyToken: replyToken,
		Messages:   []replyMessage{{Type: "text", Text: text}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal reply: %w", err)
	}

	url := c.BaseURL + "/v2/bot/message/reply"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build reply request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.ChannelToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("call reply API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("reply API status %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
