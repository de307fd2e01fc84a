package main

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/user-order-service/internal/application"
	"github.com/oksasatya/user-order-service/pkg/mailer"
	"github.com/oksasatya/user-order-service/pkg/mailer/templates"
)

type outcome int

const (
	ack outcome = iota
	drop
	retry
)

var errUnknownEvent = errors.New("unknown event type")

var templateForEvent = map[string]string{
	application.EventUserCreated: templates.Welcome,
	application.EventUserUpdated: templates.ProfileUpdated,
	application.EventUserDeleted: templates.AccountRemoved,
	application.EventOrderAdded:  templates.OrderConfirmation,
}

// jobForEvent maps a lifecycle event to the notification email it triggers.
func jobForEvent(appName string, ev application.UserEvent) (*mailer.EmailJob, error) {
	tpl, ok := templateForEvent[ev.Type]
	if !ok {
		return nil, errUnknownEvent
	}
	name := ev.FirstName
	if ev.LastName != "" {
		name += " " + ev.LastName
	}
	opts := []templates.Option{templates.WithUser(ev.UserID, ev.UserName)}
	if !ev.OccurredAt.IsZero() {
		opts = append(opts, templates.WithTime(ev.OccurredAt))
	}
	if ev.Order != nil {
		opts = append(opts, templates.WithOrder(ev.Order.ProductName, ev.Order.Price, ev.Order.Quantity))
	}
	data := templates.NewEmailData(appName, tpl, name, ev.Email, opts...)
	return &mailer.EmailJob{To: ev.Email, Template: tpl, Data: templates.ToMap(data)}, nil
}

type eventHandler struct {
	AppName string
	Sender  mailer.Sender
	Logger  *logrus.Logger
}

// handle decides what happens to one delivery: malformed or unrenderable
// messages are dropped, send failures are retried.
func (h *eventHandler) handle(ctx context.Context, body []byte) outcome {
	var ev application.UserEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		h.Logger.WithError(err).Warn("bad message")
		return drop
	}
	log := h.Logger.WithFields(logrus.Fields{"event": ev.Type, "user_id": ev.UserID})

	job, err := jobForEvent(h.AppName, ev)
	if errors.Is(err, errUnknownEvent) {
		log.Debug("no notification for event")
		return ack
	}
	if ev.Email == "" {
		log.Warn("event without recipient")
		return drop
	}
	if err := mailer.Deliver(ctx, h.Sender, job); err != nil {
		if errors.Is(err, mailer.ErrRender) {
			log.WithError(err).Error("render failed")
			return drop
		}
		log.WithError(err).Warn("send failed")
		return retry
	}
	log.Info("notification sent")
	return ack
}
