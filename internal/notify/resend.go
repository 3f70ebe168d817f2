package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ResendNotifier mails alerts through Resend.
type ResendNotifier struct {
	client *resend.Client
	from   string
	to     []string
}

func NewResendNotifier(apiKey, from string, to ...string) *ResendNotifier {
	return &ResendNotifier{
		client: resend.NewClient(apiKey),
		from:   from,
		to:     to,
	}
}

func (n *ResendNotifier) Publish(_ context.Context, alert Alert) error {
	if n.from == "" || len(n.to) == 0 {
		return errors.New("resend notifier: sender and recipient are required")
	}

	params := &resend.SendEmailRequest{
		From:    n.from,
		To:      n.to,
		Subject: alert.Subject(),
		Html:    alert.HTML(),
		Text:    alert.Text(),
	}
	if _, err := n.client.Emails.Send(params); err != nil {
		return fmt.Errorf("failed to send alert email: %w", err)
	}
	return nil
}
