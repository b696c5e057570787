package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/PhotoShare/internal/config"
	"github.com/GoArmGo/PhotoShare/internal/messaging/payloads"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

// Client представляет собой клиент RabbitMQ
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
	logger  *slog.Logger
}

// NewClient подключается к RabbitMQ и объявляет очередь задач очистки
func NewClient(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	client := &Client{logger: logger}

	conn, err := amqp.Dial(cfg.RabbitMQ.RabbitMQURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	client.conn = conn

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}
	client.channel = ch

	// идемпотентно: очередь создается, только если ее еще нет
	q, err := ch.QueueDeclare(
		cfg.RabbitMQ.RabbitMQQueueName, // name
		true,                           // durable
		false,                          // delete when unused
		false,                          // exclusive
		false,                          // no-wait
		nil,                            // arguments
	)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to declare a queue: %w", err)
	}
	client.queue = q

	logger.Info("rabbitmq queue declared", "queue", q.Name, "messages", q.Messages)
	return client, nil
}

// Close закрывает канал и соединение RabbitMQ
func (c *Client) Close() {
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			c.logger.Error("error closing rabbitmq channel", "error", err)
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			c.logger.Error("error closing rabbitmq connection", "error", err)
		}
	}
}

// PublishPhotoCleanup публикует задачу очистки файлов, реализует ports.PhotoCleanupPublisher
func (c *Client) PublishPhotoCleanup(ctx context.Context, payload payloads.PhotoCleanupPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload to JSON: %w", err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = c.channel.PublishWithContext(
		publishCtx,
		"",           // exchange
		c.queue.Name, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish a message: %w", err)
	}

	c.logger.Debug("cleanup message published", "queue", c.queue.Name, "photos", len(payload.PhotoIDs))
	return nil
}

// StartConsumingPhotoCleanup регистрирует потребителя и обрабатывает сообщения
// в отдельной горутине до отмены ctx. Реализует ports.PhotoCleanupConsumer.
func (c *Client) StartConsumingPhotoCleanup(ctx context.Context, handler func(context.Context, payloads.PhotoCleanupPayload) error) error {
	msgs, err := c.channel.Consume(
		c.queue.Name, // queue
		"",           // consumer
		false,        // auto-ack
		false,        // exclusive
		false,        // no-local
		false,        // no-wait
		nil,          // args
	)
	if err != nil {
		return fmt.Errorf("failed to register a consumer: %w", err)
	}

	c.logger.Info("consumer registered", "queue", c.queue.Name)

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					c.logger.Info("rabbitmq delivery channel closed, stopping consumer")
					return
				}
				handleDelivery(ctx, c.logger, msg, handler)
			case <-ctx.Done():
				c.logger.Info("context cancelled, stopping rabbitmq consumer")
				return
			}
		}
	}()

	return nil
}

// handleDelivery разбирает сообщение и подтверждает его по результату handler.
// Неразборчивое сообщение отбрасывается без возврата в очередь,
// ошибка обработки возвращает сообщение в очередь.
func handleDelivery(ctx context.Context, logger *slog.Logger, msg amqp.Delivery, handler func(context.Context, payloads.PhotoCleanupPayload) error) {
	var payload payloads.PhotoCleanupPayload
	if err := json.Unmarshal(msg.Body, &payload); err != nil {
		logger.Error("error unmarshalling message", "error", err, "body", string(msg.Body))
		if err := msg.Nack(false, false); err != nil {
			logger.Error("error nacking message after unmarshal failure", "error", err)
		}
		return
	}

	if err := handler(ctx, payload); err != nil {
		logger.Error("error processing message", "error", err, "photos", payload.PhotoIDs)
		if err := msg.Nack(false, true); err != nil {
			logger.Error("error nacking message after processing failure", "error", err)
		}
		return
	}

	if err := msg.Ack(false); err != nil {
		logger.Error("error acking message", "error", err)
		return
	}
	logger.Debug("cleanup message processed", "photos", payload.PhotoIDs)
}
