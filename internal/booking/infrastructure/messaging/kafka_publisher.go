package messaging

import (
	"context"

	"github.com/wyfcoding/fxbooking/internal/booking/domain"
	"github.com/wyfcoding/fxbooking/pkg/mq"
	"github.com/wyfcoding/fxbooking/pkg/utils"
)

// envelope 事件外层结构，带事件 ID、类型与发生时间
type envelope struct {
	EventID    int64             `json:"event_id"`
	EventType  string            `json:"event_type"`
	OccurredAt string            `json:"occurred_at"`
	Payload    domain.TradeEvent `json:"payload"`
}

// KafkaEventPublisher 将领域事件发布到 Kafka
type KafkaEventPublisher struct {
	producer *mq.KafkaProducer
	idgen    *utils.SnowflakeID
}

// NewKafkaEventPublisher 创建事件发布器，producer 为 nil 时发布为空操作
func NewKafkaEventPublisher(producer *mq.KafkaProducer) *KafkaEventPublisher {
	return &KafkaEventPublisher{
		producer: producer,
		idgen:    utils.NewSnowflakeID(1),
	}
}

func (p *KafkaEventPublisher) Publish(ctx context.Context, topic string, key string, event domain.TradeEvent) error {
	if p.producer == nil {
		return nil
	}
	return p.producer.SendMessage(ctx, topic, key, envelope{
		EventID:    p.idgen.Generate(),
		EventType:  event.EventType(),
		OccurredAt: event.OccurredAt().Format("2006-01-02T15:04:05.000Z07:00"),
		Payload:    event,
	})
}
