package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vida-fed/internal/config"
	"vida-fed/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var producer *kafka.Writer

// InitProducer 初始化 Kafka 生产者
func InitProducer(cfg *config.KafkaConfig) error {
	producer = &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	logger.Info("Kafka producer initialized",
		zap.Strings("brokers", cfg.Brokers),
	)
	return nil
}

// PublishJSON 以 JSON 发送消息；相同 key 落到同一分区，保证单个视频的活动有序
func PublishJSON(ctx context.Context, topic, key string, v any) error {
	if producer == nil {
		return fmt.Errorf("kafka producer not initialized")
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal message for %s: %w", topic, err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: payload,
	}
	if err := producer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send kafka message: %w", err)
	}

	logger.Debug("Kafka message sent",
		zap.String("topic", topic),
		zap.String("key", key),
		zap.Int("bytes", len(payload)),
	)
	return nil
}

// Publisher 把包级生产者包装成可注入的依赖
type Publisher struct{}

func (Publisher) PublishJSON(ctx context.Context, topic, key string, v any) error {
	return PublishJSON(ctx, topic, key, v)
}

// CloseProducer 关闭生产者
func CloseProducer() error {
	if producer == nil {
		return nil
	}
	logger.Info("Kafka producer closed")
	return producer.Close()
}
