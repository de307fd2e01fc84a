package mailer

import (
	"context"
	"errors"
	"fmt"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Sender delivers a rendered message.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// Mailgun sends through the Mailgun HTTP API.
type Mailgun struct {
	Domain string
	Sender string
	client *mg.MailgunImpl
}

func NewMailgun(domain, apiKey, sender string) *Mailgun {
	return &Mailgun{Domain: domain, Sender: sender, client: mg.NewMailgun(domain, apiKey)}
}

// Send sends an email via Mailgun. html is optional; if provided it will be used as HTML body.
func (m *Mailgun) Send(ctx context.Context, to, subject, text, html string) error {
	msg := m.client.NewMessage(m.Sender, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	c, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, _, err := m.client.Send(c, msg)
	return err
}

// ErrRender marks a job whose templates could not be rendered.
var ErrRender = errors.New("render email")

// Deliver renders job and sends it.
func Deliver(ctx context.Context, s Sender, job *EmailJob) error {
	if err := job.Render(); err != nil {
		return fmt.Errorf("%w %s: %v", ErrRender, job.Template, err)
	}
	return s.Send(ctx, job.To, job.Subject, job.Text, job.HTML)
}
