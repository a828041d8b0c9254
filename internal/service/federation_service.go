package service

import (
	"context"
	"errors"
	"fmt"

	"vida-fed/internal/api/dto"
	infraES "vida-fed/internal/infra/elasticsearch"
	infraKafka "vida-fed/internal/infra/kafka"
	"vida-fed/internal/metrics"
	"vida-fed/internal/model"
	"vida-fed/internal/repository"
	"vida-fed/internal/synth"
	"vida-fed/pkg/logger"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	activityCreate = "Create"
	activityUpdate = "Update"

	publicAudience = "https://www.w3.org/ns/activitystreams#Public"
)

// Publisher 联邦活动出口
type Publisher interface {
	PublishJSON(ctx context.Context, topic, key string, v any) error
}

// SummaryIndex 站内搜索索引
type SummaryIndex interface {
	Index(ctx context.Context, doc infraES.SummaryDoc) error
	Delete(ctx context.Context, videoID int64) error
	BulkIndex(ctx context.Context, docs []infraES.SummaryDoc) (success, failed int, err error)
}

// FederationService 响应视频变更：向 outbox 投递 Create/Update 活动，刷新缓存与搜索索引
type FederationService struct {
	store       VideoStore
	synth       *SynthHolder
	videos      *VideoService
	publisher   Publisher
	index       SummaryIndex
	outboxTopic string
}

// NewFederationService index 可以为 nil（未启用 Elasticsearch）
func NewFederationService(store VideoStore, holder *SynthHolder, videos *VideoService, publisher Publisher, index SummaryIndex, outboxTopic string) *FederationService {
	return &FederationService{
		store:       store,
		synth:       holder,
		videos:      videos,
		publisher:   publisher,
		index:       index,
		outboxTopic: outboxTopic,
	}
}

// HandleVideoEvent Kafka 视频事件入口
func (s *FederationService) HandleVideoEvent(ctx context.Context, event *infraKafka.VideoEvent) (err error) {
	ctx, span := tracer.Start(ctx, "FederationService.HandleVideoEvent", trace.WithAttributes(
		attribute.Int64("video.id", event.VideoID),
		attribute.String("event.type", event.Type),
	))
	defer func() { endSpan(span, err) }()

	if event.Type == infraKafka.EventVideoDeleted {
		return s.forget(ctx, event.VideoID, event.UUID)
	}

	video, err := s.store.GetFullByID(ctx, event.VideoID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Warn("Video from event no longer exists", zap.Int64("video_id", event.VideoID))
		return s.forget(ctx, event.VideoID, event.UUID)
	}
	if err != nil {
		return fmt.Errorf("load video %d: %w", event.VideoID, err)
	}

	if err := s.videos.InvalidateFederation(ctx, video.UUID); err != nil {
		logger.Warn("Invalidate federation cache failed", zap.Int64("video_id", video.ID), zap.Error(err))
	}
	if err := s.indexVideo(ctx, video); err != nil {
		logger.Warn("Index video summary failed", zap.Int64("video_id", video.ID), zap.Error(err))
	}

	// 联邦视频由来源节点负责分发
	if video.Remote {
		return nil
	}
	if !visible(video) || video.Blacklist != nil {
		logger.Info("Skip federation for hidden video", zap.Int64("video_id", video.ID), zap.Int("privacy", video.Privacy))
		return nil
	}

	activityType := activityUpdate
	if event.Type == infraKafka.EventVideoCreated {
		activityType = activityCreate
	}
	_, err = s.publish(ctx, video, activityType)
	return err
}

// Federate 管理员手动重新投递 Update 活动
func (s *FederationService) Federate(ctx context.Context, videoID int64) (activity *dto.Activity, err error) {
	ctx, span := tracer.Start(ctx, "FederationService.Federate", trace.WithAttributes(attribute.Int64("video.id", videoID)))
	defer func() { endSpan(span, err) }()

	video, err := s.store.GetFullByID(ctx, videoID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVideoNotFound
	}
	if err != nil {
		return nil, err
	}
	if video.Remote {
		return nil, ErrVideoNotLocal
	}
	if !visible(video) || video.Blacklist != nil {
		return nil, ErrVideoNotFound
	}

	if err := s.videos.InvalidateFederation(ctx, video.UUID); err != nil {
		logger.Warn("Invalidate federation cache failed", zap.Int64("video_id", video.ID), zap.Error(err))
	}
	return s.publish(ctx, video, activityUpdate)
}

// RefederateAll 分批重新投递全部本地视频，单个视频失败只记录日志
func (s *FederationService) RefederateAll(ctx context.Context, batchSize int) (published int, err error) {
	var afterID int64
	for {
		ids, err := s.store.ListLocalIDs(ctx, afterID, batchSize)
		if err != nil {
			return published, fmt.Errorf("list local videos after %d: %w", afterID, err)
		}
		if len(ids) == 0 {
			return published, nil
		}
		for _, id := range ids {
			if err := ctx.Err(); err != nil {
				return published, err
			}
			if _, err := s.Federate(ctx, id); err != nil {
				logger.Warn("Refederate video failed", zap.Int64("video_id", id), zap.Error(err))
				continue
			}
			published++
		}
		afterID = ids[len(ids)-1]
	}
}

func (s *FederationService) publish(ctx context.Context, video *model.Video, activityType string) (*dto.Activity, error) {
	sy, _ := s.synth.Load()
	obj, err := sy.Federation(repository.ToSnapshot(video))
	if err != nil {
		return nil, err
	}

	activity := NewActivity(activityType, obj, video.Privacy)
	err = s.publisher.PublishJSON(ctx, s.outboxTopic, fmt.Sprintf("video-%d", video.ID), activity)
	metrics.ObserveOutbox(activityType, err)
	if err != nil {
		return nil, fmt.Errorf("publish %s activity for video %d: %w", activityType, video.ID, err)
	}

	logger.Info("Federation activity published",
		zap.Int64("video_id", video.ID),
		zap.String("type", activityType),
		zap.String("object", obj.ID),
	)
	return &activity, nil
}

// NewActivity 包装联邦对象；不公开列出的视频只投递给关注者
func NewActivity(activityType string, obj dto.VideoObject, privacy int) dto.Activity {
	actor := obj.AttributedTo[0].ID
	to := []string{publicAudience}
	if privacy == privacyUnlisted {
		to = []string{actor + "/followers"}
	}

	id := obj.ID + "/activity"
	if activityType == activityUpdate {
		id = obj.ID + "/updates/" + obj.Updated
	}

	obj.Context = nil
	return dto.Activity{
		Context: synth.ActivityStreamsContext(),
		Type:    activityType,
		ID:      id,
		Actor:   actor,
		To:      to,
		Object:  obj,
	}
}

func (s *FederationService) indexVideo(ctx context.Context, video *model.Video) error {
	if s.index == nil {
		return nil
	}
	// 站内搜索只收录公开视频
	if video.Privacy != privacyPublic || video.Blacklist != nil {
		return s.index.Delete(ctx, video.ID)
	}
	sy, _ := s.synth.Load()
	return s.index.Index(ctx, infraES.NewSummaryDoc(sy.Summary(repository.ToSnapshot(video)), docOwner(video)))
}

// ReindexAll 分批把全部公开视频摘要写入搜索索引
func (s *FederationService) ReindexAll(ctx context.Context, batchSize int) (indexed, failed int, err error) {
	if s.index == nil {
		return 0, 0, nil
	}
	sy, _ := s.synth.Load()
	for page := 0; ; page++ {
		videos, _, err := s.store.ListVideos(ctx, page*batchSize, batchSize, repository.ListFilter{})
		if err != nil {
			return indexed, failed, err
		}
		if len(videos) == 0 {
			return indexed, failed, nil
		}
		docs := make([]infraES.SummaryDoc, 0, len(videos))
		for i := range videos {
			docs = append(docs, infraES.NewSummaryDoc(sy.Summary(repository.ToSnapshot(&videos[i])), docOwner(&videos[i])))
		}
		ok, bad, err := s.index.BulkIndex(ctx, docs)
		if err != nil {
			return indexed, failed, err
		}
		indexed += ok
		failed += bad
	}
}

func docOwner(video *model.Video) infraES.DocOwner {
	owner := infraES.DocOwner{}
	for _, t := range video.Tags {
		owner.Tags = append(owner.Tags, t.Name)
	}
	if video.RemoteHost != nil {
		owner.Host = *video.RemoteHost
	}
	if c := video.Channel; c != nil {
		owner.ChannelName = c.Name
		if c.Account != nil {
			owner.AccountName = c.Account.Name
		}
	}
	return owner
}

func (s *FederationService) forget(ctx context.Context, videoID int64, videoUUID string) error {
	if err := s.videos.InvalidateFederation(ctx, videoUUID); err != nil {
		logger.Warn("Invalidate federation cache failed", zap.Int64("video_id", videoID), zap.Error(err))
	}
	if s.index == nil {
		return nil
	}
	return s.index.Delete(ctx, videoID)
}
