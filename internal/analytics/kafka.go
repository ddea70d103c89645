package analytics

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/iamasit07/connect4-ai/internal/service/game"
	"github.com/segmentio/kafka-go"
)

const emitTimeout = 2 * time.Second

// KafkaPublisher writes game events to a Kafka topic, keyed by game ID so
// one game's events stay on one partition.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewPublisher returns a Kafka-backed publisher, or Noop when no brokers are
// configured.
func NewPublisher(brokers []string, topic string) game.Publisher {
	if len(brokers) == 0 {
		log.Println("[ANALYTICS] No Kafka brokers configured, event publishing disabled")
		return Noop{}
	}
	return NewKafkaPublisher(brokers, topic)
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.Hash{},
		Async:    true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.Printf("[ANALYTICS] kafka emit err: %v (%d messages dropped)", err, len(messages))
			}
		},
	}
	log.Printf("[ANALYTICS] Publishing game events to %s on %v", topic, brokers)
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) Publish(ctx context.Context, ev game.Event) {
	if p == nil || p.writer == nil {
		return
	}

	b, err := encodeEvent(ev)
	if err != nil {
		log.Printf("[ANALYTICS] Failed to encode %s event: %v", ev.Name, err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, emitTimeout)
	defer cancel()
	if err := p.writer.WriteMessages(ctx, kafka.Message{Key: []byte(ev.GameID), Value: b}); err != nil {
		log.Printf("[ANALYTICS] kafka emit err: %v", err)
	}
}

// Close flushes pending messages.
func (p *KafkaPublisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// Noop discards every event.
type Noop struct{}

func (Noop) Publish(context.Context, game.Event) {}

func encodeEvent(ev game.Event) ([]byte, error) {
	return json.Marshal(ev)
}

func decodeEvent(b []byte) (game.Event, error) {
	var ev game.Event
	err := json.Unmarshal(b, &ev)
	return ev, err
}
