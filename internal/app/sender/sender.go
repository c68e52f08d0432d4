// Package sender assembles and runs the newsletter delivery worker: it
// consumes send jobs from the queue and pushes them out over SMTP.
package sender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/natiberk/ministry-hub/internal/config"
	"github.com/natiberk/ministry-hub/internal/lib/smtp"
	"github.com/natiberk/ministry-hub/internal/rabbitmq"
	senderservice "github.com/natiberk/ministry-hub/internal/services/sender"
)

// App is the assembled sender worker.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.SenderService
	logger        *slog.Logger
}

// New connects the queue broker and builds the mail transport.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.AddressRabbit, cfg.Retries, cfg.RetryDelay)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNewsletterQueues())
	if err != nil {
		conn.Close()
		return nil, err
	}

	transport := smtp.NewTransport(cfg.SMTPConnection, logger)
	senderService := senderservice.NewSenderService(transport, logger)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

// Run consumes the send queue until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumeMessages(ctx, a.ch, rabbitmq.SendQueue, a.senderService.SendNewsletter)
	if err != nil {
		a.logger.Error("failed to start newsletter consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("sender worker shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}
	return nil
}
