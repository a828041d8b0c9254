package handler

import (
	"context"
	"errors"

	"vida-fed/internal/api/dto"
	"vida-fed/internal/api/response"
	"vida-fed/internal/repository"
	"vida-fed/internal/service"
	"vida-fed/internal/synth"
	"vida-fed/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// VideoReader 视频查询能力，由 service.VideoService 实现
type VideoReader interface {
	List(ctx context.Context, page, pageSize int, filter repository.ListFilter) (*dto.VideoListData, error)
	GetDetail(ctx context.Context, idOrUUID string) (*dto.VideoDetail, error)
	GetFederationObject(ctx context.Context, videoUUID string) (*dto.VideoObject, error)
}

type VideoHandler struct {
	videoService VideoReader
}

func NewVideoHandler(videoService VideoReader) *VideoHandler {
	return &VideoHandler{videoService: videoService}
}

// List 视频摘要列表
// @Summary 视频列表
// @Description 公开视频的摘要分页列表，不含文件信息
// @Tags 视频
// @Produce json
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Param search query string false "标题关键词"
// @Param local_only query bool false "只看本节点视频"
// @Param category query int false "分类"
// @Success 200 {object} response.Response{data=dto.VideoListData} "获取成功"
// @Failure 400 {object} response.ErrorResponse "请求参数无效"
// @Router /videos [get]
func (h *VideoHandler) List(c *gin.Context) {
	var req dto.VideoListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}
	page, pageSize := normalizePage(req.Page, req.PageSize)

	data, err := h.videoService.List(c.Request.Context(), page, pageSize, repository.ListFilter{
		Search:    req.Search,
		LocalOnly: req.LocalOnly,
		Category:  req.Category,
	})
	if err != nil {
		logger.Error("List videos failed", zap.Error(err))
		response.InternalError(c, "获取视频列表失败")
		return
	}

	response.OK(c, "获取视频列表成功", data)
}

// GetDetail 视频详情
// @Summary 视频详情
// @Description 按数字 ID、UUID 或短 UUID 获取视频详情，含文件与播放列表
// @Tags 视频
// @Produce json
// @Param id path string true "视频ID / UUID / 短UUID"
// @Success 200 {object} response.Response{data=dto.VideoDetail} "获取成功"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /videos/{id} [get]
func (h *VideoHandler) GetDetail(c *gin.Context) {
	info, err := h.videoService.GetDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "获取视频详情成功", info)
}

// GetFederationObject 联邦 Video 对象
// @Summary 联邦视频对象
// @Description 供其他节点拉取的 ActivityPub Video 对象
// @Tags 联邦
// @Produce json
// @Param uuid path string true "视频UUID"
// @Success 200 {object} dto.VideoObject "ActivityPub 对象"
// @Failure 404 {object} response.ErrorResponse "视频不存在或不属于本节点"
// @Failure 422 {object} response.ErrorResponse "视频缺少归属信息"
// @Router /videos/watch/{uuid} [get]
func (h *VideoHandler) GetFederationObject(c *gin.Context) {
	obj, err := h.videoService.GetFederationObject(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.Activity(c, obj)
}

func handleVideoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrVideoNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrVideoNotLocal):
		response.NotFound(c, err.Error())
	case errors.Is(err, synth.ErrIncompleteVideoForFederation):
		response.Unprocessable(c, "IncompleteVideo", "视频缺少账号或频道信息，无法联邦")
	case errors.Is(err, synth.ErrInvalidOriginInput):
		logger.Error("Video origin unresolvable", zap.Error(err))
		response.Unprocessable(c, "InvalidOrigin", "无法确定视频来源节点")
	default:
		logger.Error("Video operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
