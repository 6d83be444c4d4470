// Package resend sends guest emails through the Resend API.
package resend

import (
	"context"
	"fmt"
	"time"

	"github.com/resend/resend-go/v2"

	"hotelia/internal/adapters/observability"
	"hotelia/internal/domain"
)

type Sender struct {
	client *resend.Client
	from   string
}

// New builds the sender. from is the verified "Name <addr>" sender identity.
func New(apiKey, from string) (*Sender, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend: API key: %w", domain.ErrNotConfigured)
	}
	if from == "" {
		return nil, fmt.Errorf("resend: from address: %w", domain.ErrNotConfigured)
	}
	return &Sender{client: resend.NewClient(apiKey), from: from}, nil
}

func (s *Sender) Send(ctx context.Context, m domain.OutboundEmail) (string, error) {
	if m.To == "" {
		return "", domain.Invalidf("recipient address is empty")
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{m.To},
		Subject: m.Subject,
		Html:    m.HTML,
	}
	if m.ReplyTo != "" {
		params.ReplyTo = m.ReplyTo
	}

	start := time.Now()
	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		observability.ObserveProvider("resend", "send_email", 0, time.Since(start))
		return "", &domain.UpstreamError{Service: "resend", Message: err.Error()}
	}
	observability.ObserveProvider("resend", "send_email", 200, time.Since(start))
	return sent.Id, nil
}
