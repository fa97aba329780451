package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/vidtube/config"
	"github.com/oksasatya/vidtube/internal/domain/entity"
	"github.com/oksasatya/vidtube/internal/domain/repository"
	"github.com/oksasatya/vidtube/internal/infrastructure/assets"
	"github.com/oksasatya/vidtube/pkg/helpers"
	"github.com/oksasatya/vidtube/pkg/mailer"
)

// worker drains two queues: outgoing emails and assets whose compensating
// delete failed in the API.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-worker", cfg.Env, cfg.LogLevel)

	if cfg.RabbitMQURL == "" {
		logger.Fatal("RabbitMQ not configured")
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

	// prefetch for fair dispatch
	if err := ch.Qos(16, 0, false); err != nil {
		logger.Fatalf("qos: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var wg sync.WaitGroup

	if cfg.MailSendEnabled && cfg.RabbitMQEmailQueue != "" {
		mg, err := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
		if err != nil {
			logger.Fatalf("mailgun: %v", err)
		}
		consume(ctx, &wg, ch, cfg.RabbitMQEmailQueue, logger, func(ctx context.Context, body []byte) outcome {
			return sendEmail(ctx, mg, body, logger)
		})
	} else {
		logger.Info("MAIL_SEND_ENABLED=false; email consumer disabled (no real emails will be sent)")
	}

	if cfg.RabbitMQCleanupQueue != "" {
		store, closeStore, err := assets.FromConfig(ctx, cfg)
		if err != nil {
			logger.Fatalf("asset store: %v", err)
		}
		defer closeStore()
		consume(ctx, &wg, ch, cfg.RabbitMQCleanupQueue, logger, func(ctx context.Context, body []byte) outcome {
			return deleteOrphan(ctx, store, body, logger)
		})
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down...")
	cancel()

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
	}
}

var errMissingAssetID = errors.New("missing asset_id")

type outcome int

const (
	ack outcome = iota
	drop
	retry
)

func consume(ctx context.Context, wg *sync.WaitGroup, ch *amqp.Channel, queue string, logger *logrus.Logger, handle func(context.Context, []byte) outcome) {
	if err := helpers.DeclareQueue(ch, queue); err != nil {
		logger.Fatalf("queue declare %s: %v", queue, err)
	}
	msgs, err := ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		logger.Fatalf("consume %s: %v", queue, err)
	}
	logger.WithField("queue", queue).Info("worker listening")

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				switch handle(ctx, msg.Body) {
				case ack:
					_ = msg.Ack(false)
				case drop:
					_ = msg.Nack(false, false)
				case retry:
					// back off so a failing dependency is not hammered
					select {
					case <-ctx.Done():
					case <-time.After(2 * time.Second):
					}
					_ = msg.Nack(false, true)
				}
			}
		}
	}()
}

func sendEmail(ctx context.Context, mg *mailer.Mailgun, body []byte, logger *logrus.Logger) outcome {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		helpers.LogError(logger, "bad email message", err, nil)
		return drop
	}
	fields := logrus.Fields{"job_id": job.ID, "template": job.Template}
	msg, err := job.Compose()
	if err != nil {
		helpers.LogError(logger, "compose email failed", err, fields)
		return drop
	}

	c, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	id, err := mg.Send(c, job.To, msg)
	if err != nil {
		helpers.LogError(logger, "send email failed", err, fields)
		return retry
	}
	fields["mailgun_id"] = id
	helpers.LogInfo(logger, "email sent", fields)
	return ack
}

func deleteOrphan(ctx context.Context, store repository.AssetStore, body []byte, logger *logrus.Logger) outcome {
	var job entity.OrphanedAsset
	if err := json.Unmarshal(body, &job); err != nil {
		helpers.LogError(logger, "bad cleanup message", err, nil)
		return drop
	}
	if job.ID == "" {
		helpers.LogError(logger, "bad cleanup message", errMissingAssetID, nil)
		return drop
	}
	fields := logrus.Fields{"asset_id": job.ID, "kind": job.Kind, "failed_at": job.FailedAt}

	c, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := store.Delete(c, job.ID, job.Kind); err != nil {
		helpers.LogError(logger, "orphan delete failed", err, fields)
		return retry
	}
	helpers.LogInfo(logger, "orphaned asset deleted", fields)
	return ack
}
