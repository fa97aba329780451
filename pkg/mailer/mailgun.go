package mailer

import (
	"context"
	"errors"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Mailgun sends rendered messages through one Mailgun domain.
type Mailgun struct {
	client  *mg.MailgunImpl
	sender  string
	timeout time.Duration
}

func NewMailgun(domain, apiKey, sender string) (*Mailgun, error) {
	if domain == "" || apiKey == "" || sender == "" {
		return nil, errors.New("mailgun domain, api key and sender are required")
	}
	return &Mailgun{client: mg.NewMailgun(domain, apiKey), sender: sender, timeout: 10 * time.Second}, nil
}

// Send delivers msg to one recipient and returns the Mailgun message id.
func (m *Mailgun) Send(ctx context.Context, to string, msg Message) (string, error) {
	out := m.client.NewMessage(m.sender, msg.Subject, msg.Text, to)
	if msg.HTML != "" {
		out.SetHtml(msg.HTML)
	}
	c, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	_, id, err := m.client.Send(c, out)
	return id, err
}
