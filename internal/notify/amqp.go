package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"seatbooking/internal/config"
	"seatbooking/internal/events"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// Channel is the subset of *amqp.Channel the bridge publishes through.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPBridge forwards every bus event to RabbitMQ. The routing key is the
// event type when an exchange is set, otherwise the configured queue.
type AMQPBridge struct {
	conn     *amqp.Connection
	mu       sync.Mutex
	ch       Channel
	exchange string
	queue    string
	timeout  time.Duration
	logger   *zerolog.Logger
}

func NewAMQPBridge(cfg config.AMQPConfig, logger *zerolog.Logger) (*AMQPBridge, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}

	if cfg.Exchange != "" {
		if err := ch.ExchangeDeclare(cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("amqp exchange declare: %w", err)
		}
	}
	if cfg.Queue != "" {
		if _, err := ch.QueueDeclare(cfg.Queue, true, false, false, false, nil); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("amqp queue declare: %w", err)
		}
		if cfg.Exchange != "" {
			if err := ch.QueueBind(cfg.Queue, "#", cfg.Exchange, false, nil); err != nil {
				_ = conn.Close()
				return nil, fmt.Errorf("amqp queue bind: %w", err)
			}
		}
	}

	b := NewAMQPBridgeWithChannel(ch, cfg.Exchange, cfg.Queue, logger)
	b.conn = conn
	return b, nil
}

func NewAMQPBridgeWithChannel(ch Channel, exchange, queue string, logger *zerolog.Logger) *AMQPBridge {
	return &AMQPBridge{ch: ch, exchange: exchange, queue: queue, timeout: 5 * time.Second, logger: logger}
}

// Subscribe forwards all event types.
func (b *AMQPBridge) Subscribe(bus *events.EventBus) {
	bus.SubscribeAll(b.Handle)
}

func (b *AMQPBridge) Handle(ev *events.Event) error {
	key := b.queue
	if b.exchange != "" {
		key = ev.Type
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    ev.CreatedAt.UTC(),
		Type:         ev.Type,
		Body:         ev.Payload,
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.ch.PublishWithContext(ctx, b.exchange, key, false, false, msg); err != nil {
		return fmt.Errorf("amqp publish %s: %w", ev.Type, err)
	}
	b.logger.Debug().Str("event", ev.Type).Str("routing_key", key).Msg("Event forwarded")
	return nil
}

func (b *AMQPBridge) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	err := b.ch.Close()
	if b.conn != nil {
		if cerr := b.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
