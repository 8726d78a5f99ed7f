// FILE: internal/service/audit_service.go
package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"teamchat-be/internal/pkg/logger"
	"teamchat-be/pkg/events"
)

// IAuditService consumes domain events and writes them to the audit
// log. It is the only subscriber on the audit topic.
type IAuditService interface {
	Consume(ctx context.Context) error
}

type auditService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	log       logger.ILogger
}

func NewAuditService(pubSub *gochannel.GoChannel, topicName string, log logger.ILogger) IAuditService {
	return &auditService{
		pubSub:    pubSub,
		topicName: topicName,
		log:       log,
	}
}

func (s *auditService) Consume(ctx context.Context) error {
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

func (s *auditService) processMessage(msg *message.Message) {
	var event events.BaseEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		// Ack invalid messages to prevent infinite retry.
		s.log.Warn("audit", "failed to unmarshal event", map[string]interface{}{"error": err.Error()})
		msg.Ack()
		return
	}

	s.log.Info("audit", event.EventType(), event.Payload())
	msg.Ack()
}
