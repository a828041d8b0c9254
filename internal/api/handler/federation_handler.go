package handler

import (
	"context"
	"errors"
	"strconv"

	"vida-fed/internal/api/dto"
	"vida-fed/internal/api/middleware"
	"vida-fed/internal/api/response"
	"vida-fed/internal/service"
	"vida-fed/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Federator 手动重新投递，由 service.FederationService 实现
type Federator interface {
	Federate(ctx context.Context, videoID int64) (*dto.Activity, error)
}

type FederationHandler struct {
	federationService Federator
}

func NewFederationHandler(federationService Federator) *FederationHandler {
	return &FederationHandler{federationService: federationService}
}

// Federate 重新投递视频 Update 活动
// @Summary 重新联邦视频
// @Description 管理员手动向 outbox 投递视频的 Update 活动
// @Tags 管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "视频ID"
// @Success 200 {object} response.Response{data=dto.Activity} "投递成功"
// @Failure 400 {object} response.ErrorResponse "无效的视频ID"
// @Failure 401 {object} response.ErrorResponse "未认证"
// @Failure 403 {object} response.ErrorResponse "需要管理员权限"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /admin/videos/{id}/federate [post]
func (h *FederationHandler) Federate(c *gin.Context) {
	videoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || videoID <= 0 {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	activity, err := h.federationService.Federate(c.Request.Context(), videoID)
	if err != nil {
		if errors.Is(err, service.ErrVideoNotLocal) {
			response.BadRequest(c, err.Error())
			return
		}
		handleVideoError(c, err)
		return
	}

	operator, _ := middleware.GetCurrentSubject(c)
	logger.Info("Video refederated by admin",
		zap.Int64("video_id", videoID),
		zap.String("operator", operator),
	)
	response.OK(c, "已重新投递", activity)
}
