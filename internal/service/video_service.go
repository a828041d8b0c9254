package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"vida-fed/internal/api/dto"
	infraRedis "vida-fed/internal/infra/redis"
	"vida-fed/internal/metrics"
	"vida-fed/internal/model"
	"vida-fed/internal/repository"
	"vida-fed/internal/synth"
	"vida-fed/pkg/logger"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

var (
	ErrVideoNotFound = errors.New("视频不存在")
	ErrVideoNotLocal = errors.New("视频不属于本节点")
)

// 隐私级别：公开、不公开列出
const (
	privacyPublic   = 1
	privacyUnlisted = 2
)

var tracer = otel.Tracer("vida-fed/internal/service")

// VideoStore 视频快照来源
type VideoStore interface {
	GetFullByID(ctx context.Context, id int64) (*model.Video, error)
	GetFullByUUID(ctx context.Context, uuid string) (*model.Video, error)
	ListVideos(ctx context.Context, skip, limit int, filter repository.ListFilter) ([]model.Video, int64, error)
	ListLocalIDs(ctx context.Context, afterID int64, limit int) ([]int64, error)
}

// ObjectCache JSON 缓存，未命中返回 infraRedis.ErrCacheMiss
type ObjectCache interface {
	GetJSON(ctx context.Context, key string, dst any) error
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type VideoService struct {
	store    VideoStore
	synth    *SynthHolder
	cache    ObjectCache
	cacheTTL time.Duration
	group    singleflight.Group
}

// NewVideoService cache 可以为 nil，此时联邦对象每次实时生成
func NewVideoService(store VideoStore, holder *SynthHolder, cache ObjectCache, cacheTTL time.Duration) *VideoService {
	return &VideoService{store: store, synth: holder, cache: cache, cacheTTL: cacheTTL}
}

func federationCacheKey(fingerprint, videoUUID string) string {
	return "federation:" + fingerprint + ":" + videoUUID
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// List 公开视频摘要分页列表
func (s *VideoService) List(ctx context.Context, page, pageSize int, filter repository.ListFilter) (data *dto.VideoListData, err error) {
	ctx, span := tracer.Start(ctx, "VideoService.List", trace.WithAttributes(
		attribute.Int("page", page),
		attribute.Int("page_size", pageSize),
	))
	start := time.Now()
	defer func() {
		metrics.ObserveProjection(metrics.KindSummary, start, err)
		endSpan(span, err)
	}()

	skip := (page - 1) * pageSize
	videos, total, err := s.store.ListVideos(ctx, skip, pageSize, filter)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}

	sy, _ := s.synth.Load()
	summaries := make([]dto.VideoSummary, 0, len(videos))
	for i := range videos {
		summaries = append(summaries, sy.Summary(repository.ToSnapshot(&videos[i])))
	}

	totalPages := total / int64(pageSize)
	if total%int64(pageSize) > 0 {
		totalPages++
	}
	return &dto.VideoListData{
		Videos:     summaries,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// resolve 支持数字 ID、UUID 与 ShortUUID
func (s *VideoService) resolve(ctx context.Context, idOrUUID string) (*model.Video, error) {
	var (
		video *model.Video
		err   error
	)
	if id, convErr := strconv.ParseInt(idOrUUID, 10, 64); convErr == nil {
		video, err = s.store.GetFullByID(ctx, id)
	} else if u, parseErr := uuid.Parse(idOrUUID); parseErr == nil {
		video, err = s.store.GetFullByUUID(ctx, u.String())
	} else if full, shortErr := synth.ParseShortUUID(idOrUUID); shortErr == nil {
		video, err = s.store.GetFullByUUID(ctx, full)
	} else {
		return nil, ErrVideoNotFound
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVideoNotFound
	}
	if err != nil {
		return nil, err
	}
	return video, nil
}

func visible(v *model.Video) bool {
	return v.Privacy == privacyPublic || v.Privacy == privacyUnlisted
}

// GetDetail 视频详情；私有视频视为不存在，被屏蔽的视频带屏蔽信息返回
func (s *VideoService) GetDetail(ctx context.Context, idOrUUID string) (detail *dto.VideoDetail, err error) {
	ctx, span := tracer.Start(ctx, "VideoService.GetDetail", trace.WithAttributes(attribute.String("video", idOrUUID)))
	start := time.Now()
	defer func() {
		metrics.ObserveProjection(metrics.KindDetail, start, err)
		endSpan(span, err)
	}()

	video, err := s.resolve(ctx, idOrUUID)
	if err != nil {
		return nil, err
	}
	if !visible(video) {
		return nil, ErrVideoNotFound
	}

	sy, _ := s.synth.Load()
	out, err := sy.Detail(repository.ToSnapshot(video), repository.ModerationOf(video))
	if err != nil {
		logger.Error("Build video detail failed", zap.Int64("video_id", video.ID), zap.Error(err))
		return nil, err
	}
	return &out, nil
}

// canonicalUUID 把数字 ID、UUID、ShortUUID 统一成标准 UUID；缓存与合并请求都以它为键
func (s *VideoService) canonicalUUID(ctx context.Context, ref string) (string, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		video, err := s.store.GetFullByID(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrVideoNotFound
		}
		if err != nil {
			return "", err
		}
		return video.UUID, nil
	}
	if u, err := uuid.Parse(ref); err == nil {
		return u.String(), nil
	}
	if full, err := synth.ParseShortUUID(ref); err == nil {
		return full, nil
	}
	return "", ErrVideoNotFound
}

// GetFederationObject 本地视频的联邦对象，带缓存；同一视频的并发请求只生成一次
func (s *VideoService) GetFederationObject(ctx context.Context, ref string) (obj *dto.VideoObject, err error) {
	ctx, span := tracer.Start(ctx, "VideoService.GetFederationObject", trace.WithAttributes(attribute.String("video.ref", ref)))
	defer func() { endSpan(span, err) }()

	videoUUID, err := s.canonicalUUID(ctx, ref)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("video.uuid", videoUUID))

	sy, fingerprint := s.synth.Load()
	key := federationCacheKey(fingerprint, videoUUID)

	if s.cache != nil {
		var cached dto.VideoObject
		switch cacheErr := s.cache.GetJSON(ctx, key, &cached); {
		case cacheErr == nil:
			metrics.CacheHit()
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return &cached, nil
		case errors.Is(cacheErr, infraRedis.ErrCacheMiss):
			metrics.CacheMiss()
		default:
			logger.Warn("Federation cache read failed", zap.String("uuid", videoUUID), zap.Error(cacheErr))
		}
	}

	// 共享的生成过程不随首个请求取消，各请求仍按自己的 ctx 返回
	shared := context.WithoutCancel(ctx)
	ch := s.group.DoChan(key, func() (interface{}, error) {
		return s.buildFederationObject(shared, sy, videoUUID)
	})
	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if res.Err != nil {
		return nil, res.Err
	}
	built := res.Val.(dto.VideoObject)

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, built, s.cacheTTL); err != nil {
			logger.Warn("Federation cache write failed", zap.String("uuid", videoUUID), zap.Error(err))
		}
	}
	return &built, nil
}

func (s *VideoService) buildFederationObject(ctx context.Context, sy *synth.Synthesizer, videoUUID string) (obj dto.VideoObject, err error) {
	start := time.Now()
	defer func() { metrics.ObserveProjection(metrics.KindFederation, start, err) }()

	video, err := s.resolve(ctx, videoUUID)
	if err != nil {
		return dto.VideoObject{}, err
	}
	if video.Remote {
		return dto.VideoObject{}, ErrVideoNotLocal
	}
	if !visible(video) || video.Blacklist != nil {
		return dto.VideoObject{}, ErrVideoNotFound
	}

	obj, err = sy.Federation(repository.ToSnapshot(video))
	if err != nil {
		logger.Error("Build federation object failed", zap.Int64("video_id", video.ID), zap.Error(err))
		return dto.VideoObject{}, err
	}
	obj.Context = synth.ActivityStreamsContext()
	return obj, nil
}

// InvalidateFederation 删除当前配置下的联邦对象缓存
func (s *VideoService) InvalidateFederation(ctx context.Context, videoUUID string) error {
	if s.cache == nil || videoUUID == "" {
		return nil
	}
	if u, err := uuid.Parse(videoUUID); err == nil {
		videoUUID = u.String()
	}
	_, fingerprint := s.synth.Load()
	return s.cache.Delete(ctx, federationCacheKey(fingerprint, videoUUID))
}
