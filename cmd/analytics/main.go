package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iamasit07/connect4-ai/internal/analytics"
	"github.com/iamasit07/connect4-ai/internal/config"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.LoadConfig()

	brokers := cfg.KafkaBrokers
	if len(brokers) == 0 {
		brokers = []string{"localhost:9092"}
	}
	groupID := config.GetEnv("KAFKA_GROUP_ID", "connect4-analytics")

	consumer := analytics.NewConsumer(brokers, cfg.KafkaTopic, groupID)
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	interval := time.Duration(config.GetEnvAsInt("ANALYTICS_PRINT_SECONDS", 30)) * time.Second
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				consumer.Metrics.Snapshot().Print()
			}
		}
	}()

	if err := consumer.Run(ctx); err != nil {
		log.Fatalf("Consumer error: %v", err)
	}
	consumer.Metrics.Snapshot().Print()
}
