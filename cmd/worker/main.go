package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vida-fed/internal/config"
	"vida-fed/internal/infra/database"
	infraES "vida-fed/internal/infra/elasticsearch"
	infraKafka "vida-fed/internal/infra/kafka"
	infraRedis "vida-fed/internal/infra/redis"
	"vida-fed/internal/repository"
	"vida-fed/internal/service"
	"vida-fed/pkg/logger"

	"go.uber.org/zap"
)

const configPath = "configs/config.yaml"

// 联邦分发 worker：消费视频变更事件，投递 Create/Update 活动并刷新缓存与搜索索引
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
	if _, err := config.Watch(configPath, func(next *config.Config) {
		holder.Store(service.SynthConfig(next))
		logger.Info("Worker configuration reloaded")
	}, func(err error) {
		logger.Error("Failed to reload config", zap.Error(err))
	}); err != nil {
		logger.Fatal("Failed to watch config", zap.Error(err))
	}

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	var cache service.ObjectCache
	if err := infraRedis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis init failed, cache invalidation disabled", zap.Error(err))
	} else {
		defer infraRedis.Close()
		cache = infraRedis.NewCache(infraRedis.Get(), cfg.App.Name+":")
	}

	if err := infraKafka.InitProducer(&cfg.Kafka); err != nil {
		logger.Fatal("Failed to init kafka producer", zap.Error(err))
	}
	defer infraKafka.CloseProducer()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var index service.SummaryIndex
	if err := infraES.Init(&cfg.Elasticsearch); err != nil {
		logger.Warn("Elasticsearch init failed, search index will not be refreshed", zap.Error(err))
	} else {
		defer infraES.Close()
		indexer := infraES.NewIndexer(infraES.Get(), cfg.Elasticsearch.VideosIndex())
		ensureCtx, ensureCancel := context.WithTimeout(ctx, 10*time.Second)
		if err := indexer.EnsureIndex(ensureCtx); err != nil {
			logger.Warn("Elasticsearch index init failed", zap.Error(err))
		}
		ensureCancel()
		index = indexer
	}

	videoRepo := repository.NewVideoRepository(database.Get())
	videoService := service.NewVideoService(videoRepo, holder, cache, cfg.Federation.CacheTTLDuration())
	federationService := service.NewFederationService(
		videoRepo, holder, videoService,
		infraKafka.Publisher{}, index,
		cfg.Kafka.Topic("federation_outbox"),
	)

	// 监听系统信号，优雅退出
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("Received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
	}()

	logger.Info("Federation worker started",
		zap.String("events", cfg.Kafka.Topic("video_events")),
		zap.String("outbox", cfg.Kafka.Topic("federation_outbox")),
		zap.String("group", cfg.Kafka.GroupID),
		zap.Strings("brokers", cfg.Kafka.Brokers),
	)

	infraKafka.StartVideoEventConsumer(ctx,
		cfg.Kafka.Brokers,
		cfg.Kafka.Topic("video_events"),
		cfg.Kafka.GroupID,
		federationService.HandleVideoEvent,
	)
}
