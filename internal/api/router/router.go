package router

import (
	"vida-fed/internal/api/handler"
	"vida-fed/internal/api/middleware"

	_ "vida-fed/api/openapi"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Options 路由依赖的中间件参数
type Options struct {
	// JWTSecret 每次请求读取，配置热更新后立即生效
	JWTSecret func() string
	// FederationLimiter 为 nil 时联邦接口不限流
	FederationLimiter *middleware.RateLimiter
}

// Setup 注册所有业务路由
func Setup(
	r *gin.Engine,
	videoHandler *handler.VideoHandler,
	federationHandler *handler.FederationHandler,
	searchHandler *handler.SearchHandler,
	opts Options,
) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// --- 联邦接口：其他节点拉取 Video 对象 ---
	watch := r.Group("/videos")
	if opts.FederationLimiter != nil {
		watch.Use(opts.FederationLimiter.Middleware())
	}
	{
		watch.GET("/watch/:uuid", videoHandler.GetFederationObject)
	}

	v1 := r.Group("/api/v1")

	// --- 视频模块（公开） ---
	videos := v1.Group("/videos")
	{
		videos.GET("", videoHandler.List)
		videos.GET("/:id", videoHandler.GetDetail)
	}

	// --- 搜索模块 ---
	search := v1.Group("/search")
	{
		search.GET("/videos", searchHandler.SearchVideos)
	}

	// --- 管理接口 ---
	admin := v1.Group("/admin", middleware.AuthRequired(opts.JWTSecret), middleware.AdminRequired())
	{
		admin.POST("/videos/:id/federate", federationHandler.Federate)
		admin.POST("/search/sync", searchHandler.SyncVideosToES)
	}
}
