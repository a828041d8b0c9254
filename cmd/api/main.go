package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vida-fed/internal/api/handler"
	"vida-fed/internal/api/middleware"
	"vida-fed/internal/api/router"
	"vida-fed/internal/config"
	"vida-fed/internal/infra/database"
	infraES "vida-fed/internal/infra/elasticsearch"
	infraKafka "vida-fed/internal/infra/kafka"
	infraMinio "vida-fed/internal/infra/minio"
	infraRedis "vida-fed/internal/infra/redis"
	"vida-fed/internal/model"
	"vida-fed/internal/repository"
	"vida-fed/internal/service"
	"vida-fed/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @title Vida-Fed API
// @version 1.0
// @description 视频分发描述生成服务 API
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 输入格式: Bearer {token}

const configPath = "configs/config.yaml"

func main() {
	cfg, err := config.Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Init(logger.Options{
		Level:    cfg.Log.Level,
		Format:   cfg.Log.Format,
		Output:   cfg.Log.Output,
		FilePath: cfg.Log.FilePath,
	}); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	holder := service.NewSynthHolder(service.SynthConfig(cfg))

	// 配置热更新：整体替换 Synthesizer，旧缓存因指纹变化自然失效
	if _, err := config.Watch(configPath, func(next *config.Config) {
		holder.Store(service.SynthConfig(next))
		_, fingerprint := holder.Load()
		logger.Info("Configuration reloaded", zap.String("fingerprint", fingerprint))
	}, func(err error) {
		logger.Error("Failed to reload config", zap.Error(err))
	}); err != nil {
		logger.Fatal("Failed to watch config", zap.Error(err))
	}

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	if err := database.AutoMigrate(model.All()...); err != nil {
		logger.Fatal("Failed to auto migrate", zap.Error(err))
	}

	var cache service.ObjectCache
	if err := infraRedis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis init failed, federation objects will not be cached", zap.Error(err))
	} else {
		defer infraRedis.Close()
		cache = infraRedis.NewCache(infraRedis.Get(), cfg.App.Name+":")
	}

	if cfg.MinIO.Enabled {
		if err := infraMinio.Init(&cfg.MinIO); err != nil {
			logger.Fatal("Failed to init minio", zap.Error(err))
		}
	}

	if err := infraKafka.InitProducer(&cfg.Kafka); err != nil {
		logger.Fatal("Failed to init kafka producer", zap.Error(err))
	}
	defer infraKafka.CloseProducer()

	// Elasticsearch 可选，失败时管理接口只投递活动不更新索引
	var (
		index       service.SummaryIndex
		searchIndex service.SearchIndex
	)
	if err := infraES.Init(&cfg.Elasticsearch); err != nil {
		logger.Warn("Elasticsearch init failed, search falls back to database", zap.Error(err))
	} else {
		defer infraES.Close()
		indexer := infraES.NewIndexer(infraES.Get(), cfg.Elasticsearch.VideosIndex())
		index, searchIndex = indexer, indexer
	}

	// 初始化依赖（Repository -> Service -> Handler）
	videoRepo := repository.NewVideoRepository(database.Get())
	videoService := service.NewVideoService(videoRepo, holder, cache, cfg.Federation.CacheTTLDuration())
	federationService := service.NewFederationService(
		videoRepo, holder, videoService,
		infraKafka.Publisher{}, index,
		cfg.Kafka.Topic("federation_outbox"),
	)
	searchService := service.NewSearchService(videoRepo, holder, searchIndex)

	var reindexer handler.Reindexer
	if index != nil {
		reindexer = federationService
	}

	gin.SetMode(cfg.App.Mode)
	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())

	r.GET("/healthz", healthCheckHandler)

	router.Setup(r,
		handler.NewVideoHandler(videoService),
		handler.NewFederationHandler(federationService),
		handler.NewSearchHandler(searchService, reindexer),
		router.Options{
			JWTSecret: func() string { return config.Get().JWT.Secret },
			FederationLimiter: middleware.NewRateLimiter(
				float64(cfg.Federation.RateLimit),
				cfg.Federation.RateBurst,
				10*time.Minute,
			),
		},
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sy, fingerprint := holder.Load()
	logger.Info("Starting application",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("mode", cfg.App.Mode),
		zap.String("addr", addr),
		zap.String("origin", sy.Config().Origin.Self.HTTP()),
		zap.String("fingerprint", fingerprint),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 监听系统信号，优雅退出
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("Received signal, shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
}

// healthCheckHandler 健康检查接口，数据库不可用时返回 503
func healthCheckHandler(c *gin.Context) {
	cfg := config.Get()
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status, code := "ok", http.StatusOK
	deps := gin.H{"database": "ok", "redis": "disabled"}
	if err := database.Ping(ctx); err != nil {
		status, code = "degraded", http.StatusServiceUnavailable
		deps["database"] = err.Error()
	}
	if infraRedis.Get() != nil {
		deps["redis"] = "ok"
		if err := infraRedis.Ping(ctx); err != nil {
			deps["redis"] = err.Error()
		}
	}

	c.JSON(code, gin.H{
		"status":       status,
		"timestamp":    time.Now().Format(time.RFC3339),
		"service":      cfg.App.Name,
		"version":      cfg.App.Version,
		"mode":         cfg.App.Mode,
		"dependencies": deps,
	})
}
