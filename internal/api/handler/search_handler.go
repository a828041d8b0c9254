package handler

import (
	"context"
	"net/http"

	"vida-fed/internal/api/dto"
	"vida-fed/internal/api/middleware"
	"vida-fed/internal/api/response"
	"vida-fed/internal/repository"
	"vida-fed/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// reindexBatchSize 管理端全量同步每批条数
const reindexBatchSize = 200

// VideoSearcher 由 service.SearchService 实现
type VideoSearcher interface {
	Search(ctx context.Context, page, pageSize int, filter repository.ListFilter) (*dto.SearchVideoData, error)
}

// Reindexer 由 service.FederationService 实现
type Reindexer interface {
	ReindexAll(ctx context.Context, batchSize int) (indexed, failed int, err error)
}

type SearchHandler struct {
	searchService VideoSearcher
	reindexer     Reindexer
}

// NewSearchHandler reindexer 为 nil 时同步接口返回 503
func NewSearchHandler(searchService VideoSearcher, reindexer Reindexer) *SearchHandler {
	return &SearchHandler{searchService: searchService, reindexer: reindexer}
}

// SearchVideos 搜索视频
// @Summary 搜索视频
// @Description 按关键词搜索公开视频，ES 不可用时降级为数据库查询
// @Tags 搜索
// @Produce json
// @Param q query string false "搜索关键词"
// @Param local_only query bool false "只看本节点视频"
// @Param category query int false "分类"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} response.Response{data=dto.SearchVideoData} "搜索成功"
// @Failure 400 {object} response.ErrorResponse "请求参数无效"
// @Router /search/videos [get]
func (h *SearchHandler) SearchVideos(c *gin.Context) {
	var req dto.SearchVideoRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}
	page, pageSize := normalizePage(req.Page, req.PageSize)

	data, err := h.searchService.Search(c.Request.Context(), page, pageSize, repository.ListFilter{
		Search:    req.Q,
		LocalOnly: req.LocalOnly,
		Category:  req.Category,
	})
	if err != nil {
		logger.Error("Search videos failed", zap.Error(err))
		response.InternalError(c, "搜索失败")
		return
	}

	response.OK(c, "搜索成功", data)
}

// SyncVideosToES 同步视频到ES
// @Summary 同步视频到ES
// @Description 将本节点公开视频的摘要全量写入 Elasticsearch
// @Tags 管理
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response "同步成功"
// @Failure 503 {object} response.ErrorResponse "未启用搜索索引"
// @Failure 500 {object} response.ErrorResponse "同步失败"
// @Router /admin/search/sync [post]
func (h *SearchHandler) SyncVideosToES(c *gin.Context) {
	if h.reindexer == nil {
		response.Fail(c, http.StatusServiceUnavailable, "ServiceUnavailable", "未启用搜索索引")
		return
	}

	indexed, failed, err := h.reindexer.ReindexAll(c.Request.Context(), reindexBatchSize)
	if err != nil {
		logger.Error("Sync videos to ES failed", zap.Error(err))
		response.InternalError(c, "同步失败")
		return
	}

	operator, _ := middleware.GetCurrentSubject(c)
	logger.Info("Search index rebuilt by admin",
		zap.Int("indexed", indexed),
		zap.Int("failed", failed),
		zap.String("operator", operator),
	)
	response.OK(c, "同步完成", gin.H{
		"success": indexed,
		"failed":  failed,
	})
}
