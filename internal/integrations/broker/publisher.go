package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher публикует события в fanout-exchange.
// Соединение восстанавливается при следующей публикации, если было потеряно.
type Publisher struct {
	url      string
	exchange string
	source   string
	log      Logger
	recorder Recorder

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewPublisher подключается к брокеру и объявляет exchange.
// source помечает сообщения этого экземпляра, чтобы его потребитель их пропускал.
func NewPublisher(url, exchange, source string, log Logger) (*Publisher, error) {
	p := &Publisher{url: url, exchange: exchange, source: source, log: log}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

// WithRecorder включает учёт публикаций
func (p *Publisher) WithRecorder(recorder Recorder) *Publisher {
	p.recorder = recorder
	return p
}

// PublishBookingCreated публикует событие как persistent JSON
func (p *Publisher) PublishBookingCreated(ctx context.Context, event BookingCreatedEvent) (err error) {
	defer func() {
		if p.recorder != nil {
			p.recorder.IncBrokerMessage(directionPublished, err)
		}
	}()

	event.Source = p.source

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal event: %v", ErrPublish, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         RoutingKeyBookingCreated,
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch == nil || p.ch.IsClosed() {
		if err := p.connect(); err != nil {
			return err
		}
	}

	if err := p.ch.PublishWithContext(ctx, p.exchange, RoutingKeyBookingCreated, false, false, msg); err != nil {
		p.closeLocked()
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	p.log.Info("Broker: published %s booking_id=%d table=%d date=%s",
		RoutingKeyBookingCreated, event.BookingID, event.Table, event.Date)
	return nil
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeLocked()
	return nil
}

func (p *Publisher) connect() error {
	p.closeLocked()

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("%w: dial: %v", ErrConnect, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}

	if err := declareExchange(ch, p.exchange); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return err
	}

	p.conn, p.ch = conn, ch
	return nil
}

func (p *Publisher) closeLocked() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

func declareExchange(ch *amqp.Channel, exchange string) error {
	if err := ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeFanout,
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	); err != nil {
		return fmt.Errorf("%w: declare exchange %s: %v", ErrConnect, exchange, err)
	}
	return nil
}
