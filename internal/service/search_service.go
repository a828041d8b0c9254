package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vida-fed/internal/api/dto"
	infraES "vida-fed/internal/infra/elasticsearch"
	"vida-fed/internal/metrics"
	"vida-fed/internal/model"
	"vida-fed/internal/repository"
	"vida-fed/pkg/logger"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	searchSourceES = "elasticsearch"
	searchSourceDB = "database"
)

// SearchStore 搜索结果回表
type SearchStore interface {
	ListByIDs(ctx context.Context, ids []int64) ([]model.Video, error)
	ListVideos(ctx context.Context, skip, limit int, filter repository.ListFilter) ([]model.Video, int64, error)
}

// SearchIndex 摘要索引查询
type SearchIndex interface {
	Search(ctx context.Context, q infraES.SearchQuery) ([]infraES.SearchHit, int64, error)
}

type SearchService struct {
	store SearchStore
	synth *SynthHolder
	index SearchIndex
}

// NewSearchService index 为 nil 时直接查数据库
func NewSearchService(store SearchStore, holder *SynthHolder, index SearchIndex) *SearchService {
	return &SearchService{store: store, synth: holder, index: index}
}

// Search 搜索公开视频（ES 优先，失败则降级到 DB）
func (s *SearchService) Search(ctx context.Context, page, pageSize int, filter repository.ListFilter) (data *dto.SearchVideoData, err error) {
	ctx, span := tracer.Start(ctx, "SearchService.Search", trace.WithAttributes(
		attribute.String("q", filter.Search),
		attribute.Int("page", page),
	))
	start := time.Now()
	defer func() {
		metrics.ObserveProjection(metrics.KindSummary, start, err)
		endSpan(span, err)
	}()

	filter.Search = strings.TrimSpace(filter.Search)

	if s.index != nil {
		data, err := s.searchFromES(ctx, page, pageSize, filter)
		if err == nil {
			return data, nil
		}
		logger.Warn("ES search failed, fallback to DB", zap.Error(err))
	}
	return s.searchFromDB(ctx, page, pageSize, filter)
}

func (s *SearchService) searchFromES(ctx context.Context, page, pageSize int, filter repository.ListFilter) (*dto.SearchVideoData, error) {
	hits, total, err := s.index.Search(ctx, infraES.SearchQuery{
		Q:         filter.Search,
		LocalOnly: filter.LocalOnly,
		Category:  filter.Category,
		From:      (page - 1) * pageSize,
		Size:      pageSize,
	})
	if err != nil {
		return nil, err
	}

	ids := lo.Map(hits, func(h infraES.SearchHit, _ int) int64 { return h.ID })
	videos, err := s.store.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load search hits: %w", err)
	}
	byID := lo.KeyBy(videos, func(v model.Video) int64 { return v.ID })

	// 按 ES 排名回表；索引滞后时以数据库状态为准
	ordered := make([]model.Video, 0, len(hits))
	highlights := make(map[int64]map[string][]string, len(hits))
	for _, h := range hits {
		v, ok := byID[h.ID]
		if !ok || v.Privacy != privacyPublic || v.Blacklist != nil {
			continue
		}
		ordered = append(ordered, v)
		if len(h.Highlight) > 0 {
			highlights[h.ID] = h.Highlight
		}
	}
	return s.buildSearchData(ordered, highlights, total, page, pageSize, searchSourceES), nil
}

func (s *SearchService) searchFromDB(ctx context.Context, page, pageSize int, filter repository.ListFilter) (*dto.SearchVideoData, error) {
	videos, total, err := s.store.ListVideos(ctx, (page-1)*pageSize, pageSize, filter)
	if err != nil {
		return nil, fmt.Errorf("search videos: %w", err)
	}
	return s.buildSearchData(videos, nil, total, page, pageSize, searchSourceDB), nil
}

func (s *SearchService) buildSearchData(videos []model.Video, highlights map[int64]map[string][]string, total int64, page, pageSize int, source string) *dto.SearchVideoData {
	sy, _ := s.synth.Load()
	items := make([]dto.SearchVideoHit, 0, len(videos))
	for i := range videos {
		items = append(items, dto.SearchVideoHit{
			VideoSummary: sy.Summary(repository.ToSnapshot(&videos[i])),
			Highlight:    highlights[videos[i].ID],
		})
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	return &dto.SearchVideoData{
		Videos:     items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		Source:     source,
	}
}
