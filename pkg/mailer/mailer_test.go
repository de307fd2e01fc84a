package mailer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/user-order-service/pkg/mailer/templates"
)

type captureSender struct {
	to, subject, text, html string
}

func (c *captureSender) Send(_ context.Context, to, subject, text, html string) error {
	c.to, c.subject, c.text, c.html = to, subject, text, html
	return nil
}

func TestDeliverTemplate(t *testing.T) {
	s := &captureSender{}
	job := &EmailJob{
		To:       "jane@example.com",
		Template: templates.Welcome,
		Data:     templates.ToMap(templates.NewEmailData("Shop", templates.Welcome, "Jane", "jane@example.com", templates.WithUser(1, "jane"))),
	}
	require.NoError(t, Deliver(context.Background(), s, job))
	assert.Equal(t, "jane@example.com", s.to)
	assert.Equal(t, "Welcome to Shop, Jane!", s.subject)
	assert.Contains(t, s.html, "<strong>jane</strong>")
}

func TestDeliverLiteralBody(t *testing.T) {
	s := &captureSender{}
	require.NoError(t, Deliver(context.Background(), s, &EmailJob{To: "a@b.co", Subject: "hi", Text: "body"}))
	assert.Equal(t, "body", s.text)
}

func TestRenderRejectsIncompleteJobs(t *testing.T) {
	assert.Error(t, (&EmailJob{Subject: "x", Text: "y"}).Render())
	assert.Error(t, (&EmailJob{To: "a@b.co"}).Render())
	assert.Error(t, (&EmailJob{To: "a@b.co", Template: "missing"}).Render())
}

func TestDeliverRenderFailure(t *testing.T) {
	s := &captureSender{}
	err := Deliver(context.Background(), s, &EmailJob{To: "a@b.co", Template: "missing"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRender))
	assert.Empty(t, s.to)
}

func TestDeliverSendFailureIsNotRender(t *testing.T) {
	boom := errors.New("mailgun 503")
	err := Deliver(context.Background(), failingSender{boom}, &EmailJob{To: "a@b.co", Subject: "hi", Text: "body"})
	assert.ErrorIs(t, err, boom)
	assert.False(t, errors.Is(err, ErrRender))
}

type failingSender struct{ err error }

func (f failingSender) Send(context.Context, string, string, string, string) error { return f.err }
