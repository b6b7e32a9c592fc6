package pkg

import (
	"context"
	"fmt"

	"github.com/segmentio/kafka-go"
)

// RealtimePublisher 推送通知事件到实时通道，调用方必须把失败当作可忽略
type RealtimePublisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
	Close() error
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type KafkaPublisher struct {
	writer *kafka.Writer
	topic  string
}

func NewKafkaPublisher(cfg KafkaConfig) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
	}
	return &KafkaPublisher{writer: w, topic: cfg.Topic}
}

// Publish channel 作为消息 key，同一收件人的事件落在同一分区保序
func (p *KafkaPublisher) Publish(ctx context.Context, channel string, payload []byte) error {
	msg := kafka.Message{
		Key:   []byte(channel),
		Value: payload,
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *KafkaPublisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

func NotificationChannel(recipientID uint64) string {
	return fmt.Sprintf("notifications:%d", recipientID)
}
