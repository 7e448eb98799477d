package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ohmfruit/fruitstore-service/config"
	"github.com/ohmfruit/fruitstore-service/internal/dto"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

const maxRetries = 3

// Publisher announces catalog changes to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, key string, msg dto.KafkaMessage) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer  messageWriter
	backoff time.Duration
}

// CreateKafkaPublisher returns a publisher for the configured topic, or a
// no-op publisher when no broker is configured.
func CreateKafkaPublisher(conf config.KafkaConfig) Publisher {
	if conf.BrokerAddress == "" {
		log.Warn().Str("component", "CreateKafkaPublisher").Msg("BROKER_ADDRESS is empty, catalog events are disabled")
		return NoopPublisher{}
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(conf.BrokerAddress),
		Topic:                  conf.BrokerTopic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}

	return &KafkaPublisher{writer: writer, backoff: time.Second}
}

// Publish writes msg keyed by key, retrying with a linear backoff.
func (p *KafkaPublisher) Publish(ctx context.Context, key string, msg dto.KafkaMessage) (err error) {
	jsonMsg, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal Kafka message: %w", err)
	}

	for i := 0; i < maxRetries; i++ {
		err = p.writer.WriteMessages(ctx, kafka.Message{
			Key:   []byte(key),
			Value: jsonMsg,
		})
		if err == nil {
			return nil
		}

		log.Ctx(ctx).Warn().Err(err).Str("component", "Publish").Int("attempt", i+1).Str("event_type", msg.EventType).Msg("")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.backoff * time.Duration(i+1)):
		}
	}

	return fmt.Errorf("failed to write Kafka message after %d attempts: %w", maxRetries, err)
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, dto.KafkaMessage) error { return nil }

func (NoopPublisher) Close() error { return nil }
