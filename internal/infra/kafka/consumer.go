package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vida-fed/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// 视频事件类型
const (
	EventVideoCreated = "created"
	EventVideoUpdated = "updated"
	EventVideoDeleted = "deleted"
)

// VideoEvent 上游（上传/转码/编辑）发布的视频变更事件
type VideoEvent struct {
	VideoID    int64     `json:"video_id"`
	UUID       string    `json:"uuid"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Key 分区键
func (e VideoEvent) Key() string {
	return fmt.Sprintf("video-%d", e.VideoID)
}

// EventHandler 处理单条视频事件
type EventHandler func(ctx context.Context, event *VideoEvent) error

// DecodeVideoEvent 解析消息体，缺少 video_id 或类型未知都视为非法
func DecodeVideoEvent(value []byte) (*VideoEvent, error) {
	var event VideoEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return nil, fmt.Errorf("decode video event: %w", err)
	}
	if event.VideoID <= 0 {
		return nil, fmt.Errorf("video event without video_id")
	}
	switch event.Type {
	case EventVideoCreated, EventVideoUpdated, EventVideoDeleted:
	default:
		return nil, fmt.Errorf("unknown video event type %q", event.Type)
	}
	return &event, nil
}

// 处理失败的事件按退避重试，用尽后提交并丢弃，避免毒消息卡住分区
const (
	handleMaxAttempts = 5
	handleBaseBackoff = 500 * time.Millisecond
)

// messageSource 由 *kafka.Reader 实现
type messageSource interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

// StartVideoEventConsumer 启动视频事件消费者（阻塞，需在 goroutine 中运行）
// ctx 取消后会自动停止；offset 只在事件处理完成后提交
func StartVideoEventConsumer(ctx context.Context, brokers []string, topic, groupID string, handler EventHandler) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		Topic:       topic,
		GroupID:     groupID,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.LastOffset,
	})

	defer func() {
		if err := reader.Close(); err != nil {
			logger.Error("Failed to close kafka consumer", zap.Error(err))
		}
		logger.Info("Kafka video event consumer stopped")
	}()

	logger.Info("Kafka video event consumer started",
		zap.String("topic", topic),
		zap.String("group", groupID),
	)
	consume(ctx, reader, handler, handleBaseBackoff)
}

func consume(ctx context.Context, src messageSource, handler EventHandler, backoff time.Duration) {
	for {
		msg, err := src.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("Failed to fetch kafka message", zap.Error(err))
			if !sleepCtx(ctx, time.Second) {
				return
			}
			continue
		}

		event, err := DecodeVideoEvent(msg.Value)
		if err != nil {
			logger.Error("Dropping malformed video event",
				zap.Error(err),
				zap.ByteString("value", msg.Value),
			)
		} else if !handleWithRetry(ctx, handler, event, backoff) {
			// 退出时不提交，重启后重新消费
			return
		}

		if err := src.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("Failed to commit kafka message",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		}
	}
}

// handleWithRetry ctx 取消时返回 false
func handleWithRetry(ctx context.Context, handler EventHandler, event *VideoEvent, backoff time.Duration) bool {
	logger.Info("Received video event",
		zap.Int64("video_id", event.VideoID),
		zap.String("type", event.Type),
	)

	wait := backoff
	for attempt := 1; ; attempt++ {
		err := handler(ctx, event)
		if err == nil {
			return true
		}
		if ctx.Err() != nil {
			return false
		}
		if attempt >= handleMaxAttempts {
			logger.Error("Giving up on video event",
				zap.Int64("video_id", event.VideoID),
				zap.String("type", event.Type),
				zap.Int("attempts", attempt),
				zap.Error(err),
			)
			return true
		}
		logger.Warn("Failed to handle video event, retrying",
			zap.Int64("video_id", event.VideoID),
			zap.String("type", event.Type),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", wait),
			zap.Error(err),
		)
		if !sleepCtx(ctx, wait) {
			return false
		}
		wait *= 2
	}
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
