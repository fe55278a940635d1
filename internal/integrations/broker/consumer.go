package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	initialBackoff = time.Second
	maxBackoff     = 30 * time.Second
	prefetchCount  = 10
)

// HandlerFunc обрабатывает событие о новом бронировании
type HandlerFunc func(ctx context.Context, event BookingCreatedEvent) error

// Consumer слушает exchange через эксклюзивную очередь экземпляра
// и вызывает handler на каждое чужое событие
type Consumer struct {
	url      string
	exchange string
	source   string
	handler  HandlerFunc
	log      Logger
	recorder Recorder
}

func NewConsumer(url, exchange, source string, handler HandlerFunc, log Logger) *Consumer {
	return &Consumer{url: url, exchange: exchange, source: source, handler: handler, log: log}
}

// WithRecorder включает учёт полученных сообщений
func (c *Consumer) WithRecorder(recorder Recorder) *Consumer {
	c.recorder = recorder
	return c
}

// Run потребляет сообщения до отмены контекста, переподключаясь с нарастающей паузой
func (c *Consumer) Run(ctx context.Context) error {
	backoff := initialBackoff
	for {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.log.Warn("Broker consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < maxBackoff {
				backoff *= 2
			}
			continue
		}
		backoff = initialBackoff

		err = c.consume(ctx, conn)
		_ = conn.Close()

		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Warn("Broker consumer: consume loop ended: %v; reconnecting", err)
		if !sleep(ctx, initialBackoff) {
			return ctx.Err()
		}
	}
}

func (c *Consumer) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(prefetchCount, 0, false); err != nil {
		c.log.Warn("Broker consumer: set QoS failed: %v", err)
	}

	if err := declareExchange(ch, c.exchange); err != nil {
		return err
	}

	queue, err := ch.QueueDeclare(
		"",    // имя выдаст брокер
		false, // durable
		true,  // autoDelete
		true,  // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	if err := ch.QueueBind(queue.Name, "", c.exchange, false, nil); err != nil {
		return fmt.Errorf("queue bind: %w", err)
	}

	msgs, err := ch.Consume(queue.Name, "", false, true, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	c.log.Info("Broker consumer: listening on exchange=%s queue=%s", c.exchange, queue.Name)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			c.handle(ctx, d)
		}
	}
}

// handle обрабатывает одно сообщение; битые сообщения отбрасываются без повторной доставки
func (c *Consumer) handle(ctx context.Context, d amqp.Delivery) {
	var event BookingCreatedEvent
	if err := json.Unmarshal(d.Body, &event); err != nil {
		c.log.Warn("Broker consumer: %v: %v", ErrInvalidMessage, err)
		c.record(ErrInvalidMessage)
		_ = d.Nack(false, false)
		return
	}

	if event.Source != "" && event.Source == c.source {
		_ = d.Ack(false)
		return
	}

	if err := c.handler(ctx, event); err != nil {
		c.log.Error("Broker consumer: handle booking_id=%d failed: %v", event.BookingID, err)
		c.record(err)
		_ = d.Nack(false, false)
		return
	}
	c.record(nil)
	_ = d.Ack(false)
}

func (c *Consumer) record(err error) {
	if c.recorder != nil {
		c.recorder.IncBrokerMessage(directionConsumed, err)
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
