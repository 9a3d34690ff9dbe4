package service

import (
	"context"
	"encoding/json"

	"idea-passport-be/internal/dto"
	"idea-passport-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService folds completed field content into the session memory off
// the request path.
type consumerService struct {
	pubSub        *gochannel.GoChannel
	topicName     string
	memoryService IMemoryService
	log           logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	memoryService IMemoryService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:        pubSub,
		topicName:     topicName,
		memoryService: memoryService,
		log:           log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.FieldCompletedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("CONSUMER", "Failed to unmarshal field completed message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Invalid payloads are not retriable.
		return
	}

	err := cs.memoryService.ApplyFieldSummary(ctx, payload.SessionId, payload.FieldKey, payload.Content)
	if err != nil {
		cs.log.Error("CONSUMER", "Failed to apply field summary", map[string]interface{}{
			"session_id": payload.SessionId,
			"field_key":  payload.FieldKey,
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}

	cs.log.Info("CONSUMER", "Field summary stored", map[string]interface{}{
		"session_id": payload.SessionId,
		"field_key":  payload.FieldKey,
	})
	msg.Ack()
}
