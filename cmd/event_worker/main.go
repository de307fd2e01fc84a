package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/oksasatya/user-order-service/config"
	"github.com/oksasatya/user-order-service/pkg/helpers"
	"github.com/oksasatya/user-order-service/pkg/mailer"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-event-worker", cfg.Env, cfg.LogFile)

	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; event worker disabled (no emails will be sent)")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEventsQueue == "" {
		logger.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		logger.Fatal("Mailgun not configured")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		logger.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logger.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	// prefetch for fair dispatch across workers
	if err := ch.Qos(16, 0, false); err != nil {
		logger.Fatalf("qos: %v", err)
	}
	if err := helpers.DeclareQueue(ch, cfg.RabbitMQEventsQueue); err != nil {
		logger.Fatalf("queue declare: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQEventsQueue, "", false, false, false, false, nil)
	if err != nil {
		logger.Fatalf("consume: %v", err)
	}

	h := &eventHandler{
		AppName: cfg.AppName,
		Sender:  mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender),
		Logger:  logger,
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for msg := range msgs {
			c, cancelMsg := context.WithTimeout(ctx, 15*time.Second)
			switch h.handle(c, msg.Body) {
			case ack:
				_ = msg.Ack(false)
			case drop:
				_ = msg.Nack(false, false)
			case retry:
				_ = msg.Nack(false, true)
			}
			cancelMsg()
		}
	}()

	logger.Infof("event worker listening on queue=%s", cfg.RabbitMQEventsQueue)
	select {
	case <-stop:
	case <-done:
		logger.Warn("delivery channel closed")
	}
	logger.Info("shutting down...")
	cancel()
	_ = ch.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
