package mailer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	tpl "github.com/oksasatya/vidtube/pkg/mailer/templates"
)

// EmailJob is the JSON payload on the email queue. The worker renders
// Template with Data; jobs never carry pre-rendered bodies.
type EmailJob struct {
	ID       string         `json:"id"`
	To       string         `json:"to"`
	Template string         `json:"template"`
	Data     map[string]any `json:"data,omitempty"`
	QueuedAt time.Time      `json:"queued_at"`
}

func NewEmailJob(to, template string, data map[string]any) EmailJob {
	return EmailJob{ID: uuid.NewString(), To: to, Template: template, Data: data, QueuedAt: time.Now().UTC()}
}

// Message is a rendered email ready to send.
type Message struct {
	Subject string
	Text    string
	HTML    string
}

var ErrBadJob = errors.New("malformed email job")

// Compose validates the job and renders its template. Address fields the
// template expects default to the recipient.
func (j EmailJob) Compose() (Message, error) {
	if strings.TrimSpace(j.To) == "" {
		return Message{}, fmt.Errorf("%w: missing recipient", ErrBadJob)
	}
	if !tpl.Known(j.Template) {
		return Message{}, fmt.Errorf("%w: unknown template %q", ErrBadJob, j.Template)
	}
	data := make(map[string]any, len(j.Data)+2)
	for k, v := range j.Data {
		data[k] = v
	}
	for _, key := range []string{"Email", "RecipientEmail"} {
		if s, _ := data[key].(string); s == "" {
			data[key] = j.To
		}
	}
	subject, text, html, err := tpl.Render(j.Template, data)
	if err != nil {
		return Message{}, err
	}
	return Message{Subject: subject, Text: text, HTML: html}, nil
}
