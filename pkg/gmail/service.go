// Package gmail fetches mailbox messages through the Gmail REST API.
package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	emaildomain "embox-backend/internal/email/domain"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

type Service struct {
	// Endpoint overrides the Gmail API base URL. Tests point it at a
	// local httptest server; empty means the real API.
	Endpoint string
}

func NewService() *Service {
	return &Service{}
}

func (s *Service) newGmailService(ctx context.Context, accessToken string) (*gmail.Service, error) {
	token := &oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}

	opts := []option.ClientOption{
		option.WithTokenSource(oauth2.StaticTokenSource(token)),
	}
	if s.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(s.Endpoint))
	}

	srv, err := gmail.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail service: %w", err)
	}
	return srv, nil
}

// FetchRecent returns up to maxResults of the most recent messages, projected
// to sender/subject/body. The body is taken from the first text-typed part.
func (s *Service) FetchRecent(ctx context.Context, accessToken string, maxResults int64) ([]emaildomain.EmailSummary, error) {
	srv, err := s.newGmailService(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	user := "me"
	listResp, err := srv.Users.Messages.List(user).MaxResults(maxResults).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to list messages: %w", err)
	}

	summaries := make([]emaildomain.EmailSummary, 0, len(listResp.Messages))
	for _, m := range listResp.Messages {
		full, err := srv.Users.Messages.Get(user, m.Id).Format("full").Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("unable to retrieve message %s: %w", m.Id, err)
		}
		summaries = append(summaries, convertMessage(full))
	}

	return summaries, nil
}

func convertMessage(msg *gmail.Message) emaildomain.EmailSummary {
	return emaildomain.EmailSummary{
		From:    getHeader(msg.Payload.Headers, "From"),
		Subject: getHeader(msg.Payload.Headers, "Subject"),
		Body:    getTextBody(msg.Payload),
	}
}

func getHeader(headers []*gmail.MessagePartHeader, name string) string {
	for _, header := range headers {
		if strings.EqualFold(header.Name, name) {
			return header.Value
		}
	}
	return ""
}

// getTextBody returns the decoded content of the first text-typed part.
func getTextBody(payload *gmail.MessagePart) string {
	for _, p := range payload.Parts {
		if !strings.HasPrefix(p.MimeType, "text/") {
			continue
		}
		if p.Body == nil || p.Body.Data == "" {
			return ""
		}
		data, err := base64.URLEncoding.DecodeString(p.Body.Data)
		if err != nil {
			return ""
		}
		return string(data)
	}
	return ""
}
