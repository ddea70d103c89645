package analytics

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/segmentio/kafka-go"
)

// Consumer reads game events from Kafka into a Metrics aggregate.
type Consumer struct {
	reader  *kafka.Reader
	Metrics *Metrics
}

func NewConsumer(brokers []string, topic, groupID string) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{Brokers: brokers, Topic: topic, GroupID: groupID})
	return &Consumer{reader: r, Metrics: NewMetrics()}
}

// Run consumes until ctx is cancelled or the reader is closed.
func (c *Consumer) Run(ctx context.Context) error {
	log.Println("[ANALYTICS] Consumer started. Listening for game events...")
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				return nil
			}
			log.Printf("[ANALYTICS] Error reading message: %v", err)
			continue
		}
		c.handle(m.Value)
	}
}

func (c *Consumer) handle(value []byte) {
	ev, err := decodeEvent(value)
	if err != nil {
		log.Printf("[ANALYTICS] Error unmarshaling message: %v", err)
		return
	}
	c.Metrics.Apply(ev)
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
