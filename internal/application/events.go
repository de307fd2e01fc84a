package application

import (
	"context"
	"time"

	"github.com/oksasatya/user-order-service/internal/domain/entity"
)

// Lifecycle event types published after a successful store call.
const (
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
	EventUserDeleted = "user.deleted"
	EventOrderAdded  = "order.added"
)

// EventPublisher is satisfied by helpers.RabbitPublisher.
type EventPublisher interface {
	PublishEvent(ctx context.Context, eventType string, body any) error
}

// UserEvent is the JSON body of every lifecycle message.
type UserEvent struct {
	Type       string        `json:"type"`
	UserID     int64         `json:"userId"`
	UserName   string        `json:"userName"`
	Email      string        `json:"email"`
	FirstName  string        `json:"firstName"`
	LastName   string        `json:"lastName"`
	Order      *entity.Order `json:"order,omitempty"`
	OccurredAt time.Time     `json:"occurredAt"`
}

func newUserEvent(eventType string, u *entity.User) UserEvent {
	return UserEvent{
		Type:       eventType,
		UserID:     u.UserID,
		UserName:   u.UserName,
		Email:      u.Email,
		FirstName:  u.FullName.FirstName,
		LastName:   u.FullName.LastName,
		OccurredAt: time.Now().UTC(),
	}
}

func (s *Service) publish(ctx context.Context, ev UserEvent) {
	if s.Events == nil {
		return
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := s.Events.PublishEvent(c, ev.Type, ev); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("event", ev.Type).WithField("user_id", ev.UserID).Warn("publish event failed")
	}
}
