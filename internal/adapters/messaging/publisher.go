package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"holidayplanner/internal/domain"
	"holidayplanner/internal/requestctx"
)

// RoutingKeyExperienceCreated is the topic routing key for newly stored experiences.
const RoutingKeyExperienceCreated = "experience.created"

const (
	dialAttempts = 5
	dialBackoff  = 2 * time.Second
)

// channel is the subset of *amqp.Channel used for publishing.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher publishes experience events to a RabbitMQ topic exchange.
// A dropped connection is redialled on the next publish.
type Publisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  channel
	connect  func() (*amqp.Connection, channel, error)
	exchange string
	logger   *slog.Logger
	now      func() time.Time
}

// NewPublisher dials url, declares a durable topic exchange and returns a publisher for it.
func NewPublisher(url, exchange string, logger *slog.Logger) (*Publisher, error) {
	p := &Publisher{exchange: exchange, logger: logger, now: time.Now}
	p.connect = func() (*amqp.Connection, channel, error) {
		return dial(url, exchange, logger)
	}
	conn, ch, err := p.connect()
	if err != nil {
		return nil, err
	}
	p.attach(conn, ch)
	return p, nil
}

func dial(url, exchange string, logger *slog.Logger) (*amqp.Connection, channel, error) {
	var conn *amqp.Connection
	var err error
	for i := 1; i <= dialAttempts; i++ {
		conn, err = amqp.Dial(url)
		if err == nil {
			break
		}
		logger.Warn("failed to connect to RabbitMQ, retrying", "attempt", i, "error", err)
		time.Sleep(dialBackoff)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to RabbitMQ after retries: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("failed to open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, fmt.Errorf("failed to declare exchange: %w", err)
	}
	return conn, ch, nil
}

// attach installs conn and ch and drops them once the broker closes the connection.
func (p *Publisher) attach(conn *amqp.Connection, ch channel) {
	p.conn, p.channel = conn, ch
	if conn == nil {
		return
	}
	closed := conn.NotifyClose(make(chan *amqp.Error, 1))
	go func() {
		amqpErr, ok := <-closed
		if ok && amqpErr != nil {
			p.logger.Warn("RabbitMQ connection closed", "error", amqpErr)
		}
		p.mu.Lock()
		if p.conn == conn {
			p.conn, p.channel = nil, nil
		}
		p.mu.Unlock()
	}()
}

// current returns the live channel, redialling when the previous one was dropped.
func (p *Publisher) current() (channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel != nil {
		return p.channel, nil
	}
	if p.connect == nil {
		return nil, amqp.ErrClosed
	}
	conn, ch, err := p.connect()
	if err != nil {
		return nil, err
	}
	p.logger.Info("reconnected to RabbitMQ", "exchange", p.exchange)
	p.attach(conn, ch)
	return ch, nil
}

// drop forgets ch if it is still the current channel.
func (p *Publisher) drop(ch channel) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel != ch {
		return
	}
	p.channel.Close()
	if p.conn != nil {
		p.conn.Close()
	}
	p.conn, p.channel = nil, nil
}

// PublishExperienceCreated sends evt as a persistent JSON message. A publish on a
// closed channel is retried once on a fresh connection.
func (p *Publisher) PublishExperienceCreated(ctx context.Context, evt domain.ExperienceCreatedEvent) error {
	msg, err := p.publishing(ctx, evt)
	if err != nil {
		return err
	}
	for attempt := 1; ; attempt++ {
		ch, err := p.current()
		if err != nil {
			return fmt.Errorf("failed to publish message: %w", err)
		}
		err = ch.PublishWithContext(ctx, p.exchange, RoutingKeyExperienceCreated, false, false, msg)
		if err == nil {
			break
		}
		if !errors.Is(err, amqp.ErrClosed) || attempt == 2 {
			return fmt.Errorf("failed to publish message: %w", err)
		}
		p.drop(ch)
	}
	p.logger.Info("published experience event", "routing_key", RoutingKeyExperienceCreated, "experience_id", evt.ExperienceID, "message_id", msg.MessageId)
	return nil
}

func (p *Publisher) publishing(ctx context.Context, evt domain.ExperienceCreatedEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(evt)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal message: %w", err)
	}
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    p.now().UTC(),
		Type:         RoutingKeyExperienceCreated,
		Body:         body,
	}
	if id := requestctx.RequestID(ctx); id != "" {
		msg.Headers = amqp.Table{"X-Request-ID": id}
	}
	return msg, nil
}

// Close closes the channel and the connection.
func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.connect = nil
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}

type noopPublisher struct {
	logger *slog.Logger
}

// NewNoopPublisher returns a publisher that only logs, used when no broker is configured.
func NewNoopPublisher(logger *slog.Logger) domain.ExperiencePublisher {
	return &noopPublisher{logger: logger}
}

func (n *noopPublisher) PublishExperienceCreated(_ context.Context, evt domain.ExperienceCreatedEvent) error {
	n.logger.Debug("experience event would be published (noop)", "experience_id", evt.ExperienceID)
	return nil
}
