package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v2"

	"kabar/internal/config"
)

type Service interface {
	SendModerationAlert(ctx context.Context, postTitle, authorName, excerpt string) error
}

type service struct {
	client *resend.Client
	config *config.Config
}

func NewService(cfg *config.Config) Service {
	return &service{
		client: resend.NewClient(cfg.ResendAPIKey),
		config: cfg,
	}
}

var moderationAlertTemplate = template.Must(template.New("moderation_alert").Parse(`
<p>A new visitor comment is waiting for moderation.</p>
<p><strong>Post:</strong> {{.PostTitle}}<br>
<strong>From:</strong> {{.AuthorName}}</p>
<blockquote>{{.Excerpt}}</blockquote>
<p><a href="http://{{.Domain}}/admin/comments">Review the moderation queue</a></p>
`))

// SendModerationAlert notifies the configured moderation address that a guest
// comment landed in the pending queue. Callers fire it best-effort.
func (s *service) SendModerationAlert(ctx context.Context, postTitle, authorName, excerpt string) error {
	if s.config.ModerationEmail == "" {
		return nil
	}

	data := struct {
		PostTitle  string
		AuthorName string
		Excerpt    string
		Domain     string
	}{
		PostTitle:  postTitle,
		AuthorName: authorName,
		Excerpt:    excerpt,
		Domain:     s.config.Domain,
	}

	var body bytes.Buffer
	if err := moderationAlertTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("render moderation alert: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Kabar <%s>", s.config.FromEmail),
		To:      []string{s.config.ModerationEmail},
		Html:    body.String(),
		Subject: "New comment awaiting moderation",
	}

	_, err := s.client.Emails.Send(params)
	return err
}
