package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/ohmfruit/fruitstore-service/config"
	"github.com/ohmfruit/fruitstore-service/internal/dto"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	failures int
	written  []kafka.Message
	calls    int
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	w.calls++
	if w.calls <= w.failures {
		return errors.New("leader not available")
	}
	w.written = append(w.written, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func TestPublishRetries(t *testing.T) {
	w := &fakeWriter{failures: 2}
	p := &KafkaPublisher{writer: w}

	err := p.Publish(context.Background(), "p1", dto.KafkaMessage{
		EventType: dto.EventDeleteProduct,
		Data:      dto.DeletedResource{ID: "p1"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, w.calls)
	require.Len(t, w.written, 1)
	assert.Equal(t, "p1", string(w.written[0].Key))

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.written[0].Value, &got))
	assert.Equal(t, "delete_product", got["event_type"])
}

func TestPublishGivesUp(t *testing.T) {
	w := &fakeWriter{failures: 10}
	p := &KafkaPublisher{writer: w}

	err := p.Publish(context.Background(), "", dto.KafkaMessage{EventType: dto.EventAddCategory})
	assert.Error(t, err)
	assert.Equal(t, maxRetries, w.calls)
}

func TestCreateKafkaPublisherWithoutBroker(t *testing.T) {
	p := CreateKafkaPublisher(config.KafkaConfig{})
	assert.IsType(t, NoopPublisher{}, p)
	assert.NoError(t, p.Publish(context.Background(), "", dto.KafkaMessage{}))
}
