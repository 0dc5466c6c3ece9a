package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/wkarto/buzzline-04-karto/pkg/reduce"
)

// KafkaSource subscribes to one topic with a consumer group and yields
// each delivered record's payload. Delivery semantics beyond "blocks on
// the next message" belong to the client library.
type KafkaSource struct {
	reader *kafka.Reader
}

func NewKafkaSource(brokers []string, topic, groupID string) *KafkaSource {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})

	zap.S().Infow("subscribed to topic",
		"topic", topic,
		"group_id", groupID,
		"brokers", brokers)

	return &KafkaSource{reader: reader}
}

func (s *KafkaSource) Next(ctx context.Context) ([]byte, error) {
	msg, err := s.reader.ReadMessage(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", reduce.ErrSourceUnavailable, err)
	}
	return msg.Value, nil
}

func (s *KafkaSource) Close() error {
	return s.reader.Close()
}
