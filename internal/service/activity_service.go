package service

import (
	"context"
	"encoding/json"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/repository/memory"
	"ai-chat-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IActivityService interface {
	Consume(ctx context.Context) error
	Recent(ctx context.Context, userId uuid.UUID) []*dto.ActivityEventDTO
}

// activityService tails the chat activity topic and keeps a short per-user
// window of recent events for the activity endpoint.
type activityService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	activityRepo *memory.ActivityRepository
	log          logger.ILogger
}

func NewActivityService(pubSub *gochannel.GoChannel, topicName string, activityRepo *memory.ActivityRepository, log logger.ILogger) IActivityService {
	return &activityService{
		pubSub:       pubSub,
		topicName:    topicName,
		activityRepo: activityRepo,
		log:          log,
	}
}

func (s *activityService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(msg)
		}
	}()

	return nil
}

func (s *activityService) processMessage(msg *message.Message) {
	var event events.BaseEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		// Ack malformed payloads to prevent infinite redelivery.
		s.log.Warn("activity", "failed to unmarshal event", map[string]interface{}{"error": err.Error()})
		msg.Ack()
		return
	}

	s.activityRepo.Append(event.UserId, event)
	s.log.Info("activity", "chat event", map[string]interface{}{
		"type":    event.Type,
		"user_id": event.UserId,
		"data":    event.Data,
	})
	msg.Ack()
}

func (s *activityService) Recent(ctx context.Context, userId uuid.UUID) []*dto.ActivityEventDTO {
	window := s.activityRepo.Recent(userId.String())
	response := make([]*dto.ActivityEventDTO, 0, len(window))
	for _, e := range window {
		response = append(response, &dto.ActivityEventDTO{
			Type:       e.Type,
			Data:       e.Data,
			OccurredAt: e.OccurredAt,
		})
	}
	return response
}
