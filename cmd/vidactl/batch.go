package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"vida-fed/internal/config"
	"vida-fed/internal/infra/database"
	infraES "vida-fed/internal/infra/elasticsearch"
	infraKafka "vida-fed/internal/infra/kafka"
	infraRedis "vida-fed/internal/infra/redis"
	"vida-fed/internal/repository"
	"vida-fed/internal/service"
	"vida-fed/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// batchDeps 批处理命令需要的外部依赖
type batchDeps struct {
	kafka         bool
	elasticsearch bool
}

// setupFederation 按需初始化基础设施并组装 FederationService；返回的 cleanup 逆序释放
func setupFederation(ctx context.Context, cfg *config.Config, deps batchDeps) (*service.FederationService, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, cleanup, fmt.Errorf("init database: %w", err)
	}
	closers = append(closers, func() { _ = database.Close() })

	var cache service.ObjectCache
	if err := infraRedis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis init failed, cached federation objects will expire by TTL", zap.Error(err))
	} else {
		closers = append(closers, func() { _ = infraRedis.Close() })
		cache = infraRedis.NewCache(infraRedis.Get(), cfg.App.Name+":")
	}

	if deps.kafka {
		if err := infraKafka.InitProducer(&cfg.Kafka); err != nil {
			return nil, cleanup, fmt.Errorf("init kafka producer: %w", err)
		}
		closers = append(closers, func() { _ = infraKafka.CloseProducer() })
	}

	var index service.SummaryIndex
	if deps.elasticsearch {
		if err := infraES.Init(&cfg.Elasticsearch); err != nil {
			return nil, cleanup, fmt.Errorf("init elasticsearch: %w", err)
		}
		closers = append(closers, func() { _ = infraES.Close() })
		indexer := infraES.NewIndexer(infraES.Get(), cfg.Elasticsearch.VideosIndex())
		if err := indexer.EnsureIndex(ctx); err != nil {
			return nil, cleanup, err
		}
		index = indexer
	}

	holder := service.NewSynthHolder(service.SynthConfig(cfg))
	videoRepo := repository.NewVideoRepository(database.Get())
	videoService := service.NewVideoService(videoRepo, holder, cache, cfg.Federation.CacheTTLDuration())
	return service.NewFederationService(
		videoRepo, holder, videoService,
		infraKafka.Publisher{}, index,
		cfg.Kafka.Topic("federation_outbox"),
	), cleanup, nil
}

func newRefederateCmd() *cobra.Command {
	var batch int

	cmd := &cobra.Command{
		Use:   "refederate",
		Short: "向 outbox 重新投递全部本地视频的 Update 活动",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := initLogger(cfg); err != nil {
				return err
			}
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			svc, cleanup, err := setupFederation(ctx, cfg, batchDeps{kafka: true})
			defer cleanup()
			if err != nil {
				return err
			}

			published, err := svc.RefederateAll(ctx, batch)
			fmt.Fprintf(cmd.OutOrStdout(), "published %d activities\n", published)
			return err
		},
	}

	cmd.Flags().IntVarP(&batch, "batch", "b", 100, "每批处理的视频数")
	return cmd
}

func newReindexCmd() *cobra.Command {
	var batch int

	cmd := &cobra.Command{
		Use:   "reindex",
		Short: "重建站内搜索的视频摘要索引",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := initLogger(cfg); err != nil {
				return err
			}
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			svc, cleanup, err := setupFederation(ctx, cfg, batchDeps{elasticsearch: true})
			defer cleanup()
			if err != nil {
				return err
			}

			indexed, failed, err := svc.ReindexAll(ctx, batch)
			fmt.Fprintf(cmd.OutOrStdout(), "indexed %d documents, %d failed\n", indexed, failed)
			return err
		},
	}

	cmd.Flags().IntVarP(&batch, "batch", "b", 500, "每批写入的文档数")
	return cmd
}
