package helpers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitPublisher publishes user lifecycle events to a durable queue with publisher confirms.
type RabbitPublisher struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	Queue string
	AppID string
}

func NewRabbitPublisher(url, queue, appID string) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := DeclareQueue(ch, queue); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}
	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("enable confirms: %w", err)
	}
	return &RabbitPublisher{conn: conn, ch: ch, Queue: queue, AppID: appID}, nil
}

// DeclareQueue declares the durable events queue. The server and the event worker both call it.
func DeclareQueue(ch *amqp.Channel, queue string) error {
	_, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	return err
}

func (p *RabbitPublisher) Close() {
	if p == nil {
		return
	}
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

// PublishEvent sends body as a persistent JSON message typed eventType and
// waits for the broker to confirm it or for ctx to end.
func (p *RabbitPublisher) PublishEvent(ctx context.Context, eventType string, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s: %w", eventType, err)
	}
	conf, err := p.ch.PublishWithDeferredConfirmWithContext(ctx,
		"",      // default exchange
		p.Queue, // routing key = queue
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    uuid.NewString(),
			AppId:        p.AppID,
			Type:         eventType,
			Timestamp:    time.Now().UTC(),
			Body:         b,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", eventType, err)
	}
	ok, err := conf.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("confirm %s: %w", eventType, err)
	}
	if !ok {
		return fmt.Errorf("publish %s: nacked by broker", eventType)
	}
	return nil
}
