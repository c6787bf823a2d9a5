package service

import (
	"encoding/json"
	"time"

	"ask-backend/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IPublisherService publishes session lifecycle events on the in-process bus.
type IPublisherService interface {
	PublishSessionCreated(sessionID, sourceName string, chunkCount int) error
	PublishSessionDeleted(sessionID string) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (ps *publisherService) PublishSessionCreated(sessionID, sourceName string, chunkCount int) error {
	return ps.publish(dto.SessionEventMessage{
		Type:       dto.SessionEventCreated,
		SessionID:  sessionID,
		SourceName: sourceName,
		ChunkCount: chunkCount,
		OccurredAt: time.Now(),
	})
}

func (ps *publisherService) PublishSessionDeleted(sessionID string) error {
	return ps.publish(dto.SessionEventMessage{
		Type:       dto.SessionEventDeleted,
		SessionID:  sessionID,
		OccurredAt: time.Now(),
	})
}

func (ps *publisherService) publish(event dto.SessionEventMessage) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	return ps.pubSub.Publish(ps.topicName, msg)
}
