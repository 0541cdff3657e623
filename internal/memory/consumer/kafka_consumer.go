package consumer

import (
	"context"
	"encoding/json"

	"mortgagemind/internal/database/kafka"
	"mortgagemind/internal/memory/service"
	"mortgagemind/internal/models"
	"mortgagemind/pkg/logger"
)

// KafkaConsumer consumes conversation-turn events from a Kafka topic and
// records them through the MemoryService, giving callers a fire-and-forget
// ingestion path next to the HTTP one.
type KafkaConsumer struct {
	kafkaClient   *kafka.KafkaClient
	memoryService *service.MemoryService
	logger        *logger.Logger
}

// NewKafkaConsumer creates a new KafkaConsumer.
func NewKafkaConsumer(kafkaClient *kafka.KafkaClient, memoryService *service.MemoryService, logger *logger.Logger) *KafkaConsumer {
	return &KafkaConsumer{
		kafkaClient:   kafkaClient,
		memoryService: memoryService,
		logger:        logger,
	}
}

// Start launches the consume loop. It runs until ctx is cancelled. A turn
// whose write fails is not committed, so it is redelivered; malformed
// events are committed away since redelivery cannot fix them.
func (c *KafkaConsumer) Start(ctx context.Context) {
	go func() {
		for {
			msg, err := c.kafkaClient.Reader.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				c.logger.WithError(models.ErrorInfo{Message: err.Error()}).Error("failed to fetch message")
				continue
			}

			var turn models.TurnEvent
			if err := json.Unmarshal(msg.Value, &turn); err != nil {
				c.logger.WithError(models.ErrorInfo{Message: err.Error()}).Error("failed to unmarshal turn event")
				if err := c.kafkaClient.Reader.CommitMessages(ctx, msg); err != nil {
					c.logger.WithError(models.ErrorInfo{Message: err.Error()}).Error("failed to commit message")
				}
				continue
			}

			if turn.UserID == "" || turn.Message == "" {
				c.logger.Warn("dropping turn event without userId or message")
				if err := c.kafkaClient.Reader.CommitMessages(ctx, msg); err != nil {
					c.logger.WithError(models.ErrorInfo{Message: err.Error()}).Error("failed to commit message")
				}
				continue
			}

			if _, err := c.memoryService.RecordTurn(ctx, &turn); err != nil {
				c.logger.WithError(models.ErrorInfo{Message: err.Error(), Type: "store_error"}).Error("failed to record turn")
				continue
			}

			if err := c.kafkaClient.Reader.CommitMessages(ctx, msg); err != nil {
				c.logger.WithError(models.ErrorInfo{Message: err.Error()}).Error("failed to commit message")
			}
		}
	}()
}
