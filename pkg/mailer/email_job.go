package mailer

import (
	"fmt"

	"github.com/oksasatya/user-order-service/pkg/mailer/templates"
)

// EmailJob is one outgoing message. Either the literal Subject/Text/HTML are
// used, or Template names a template set rendered with Data.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // welcome, profile_updated, account_removed, order_confirmation
	Data     map[string]any `json:"data,omitempty"`
}

// Render fills Subject/Text/HTML from the template when one is set.
func (j *EmailJob) Render() error {
	if j.To == "" {
		return fmt.Errorf("email job has no recipient")
	}
	if j.Template == "" {
		if j.Subject == "" || (j.Text == "" && j.HTML == "") {
			return fmt.Errorf("email job has neither template nor body")
		}
		return nil
	}
	subject, text, html, err := templates.Render(j.Template, j.Data)
	if err != nil {
		return fmt.Errorf("render %s: %w", j.Template, err)
	}
	j.Subject, j.Text, j.HTML = subject, text, html
	return nil
}
