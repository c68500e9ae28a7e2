// Package sender собирает процесс, который читает очереди напоминаний и
// сохраняет их как уведомления пользователей.
package sender

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/greencontrol/internal/config"
	"github.com/magabrotheeeer/greencontrol/internal/lib/sl"
	"github.com/magabrotheeeer/greencontrol/internal/rabbitmq"
	notificationservice "github.com/magabrotheeeer/greencontrol/internal/services/notification"
	"github.com/magabrotheeeer/greencontrol/internal/services/reminder"
	"github.com/magabrotheeeer/greencontrol/internal/storage/repository"
)

// App приложение отправителя уведомлений.
type App struct {
	conn   *amqp.Connection
	ch     *amqp.Channel
	db     *repository.Storage
	sender *reminder.Sender
	logger *slog.Logger
}

// New подключается к PostgreSQL и RabbitMQ.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL, cfg.RabbitMQ.MaxRetries, cfg.RetryDelay)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.ReminderQueues())
	if err != nil {
		_ = conn.Close()
		_ = db.Close()
		return nil, err
	}

	notifications := notificationservice.NewService(logger, db)

	return &App{
		conn:   conn,
		ch:     ch,
		db:     db,
		sender: reminder.NewSender(logger, notifications),
		logger: logger,
	}, nil
}

// Run читает обе очереди напоминаний до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	for _, q := range rabbitmq.ReminderQueues() {
		if err := rabbitmq.Consume(ctx, a.logger, a.ch, q.QueueName, a.sender.Handle); err != nil {
			a.logger.Error("failed to start consumer", slog.String("queue", q.QueueName), sl.Err(err))
			a.close()
			return fmt.Errorf("consume %s: %w", q.QueueName, err)
		}
	}

	<-ctx.Done()
	a.logger.Info("sender service shutting down gracefully")
	a.close()
	return nil
}

func (a *App) close() {
	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close storage", sl.Err(err))
	}
}
