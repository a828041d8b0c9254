package minio

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vida-fed/internal/config"
	"vida-fed/pkg/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

var client *minio.Client

// Init 初始化 MinIO 客户端，确保媒体桶存在且公开可读
func Init(cfg *config.MinIOConfig) error {
	var err error
	client, err = minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, bucket := range MediaBuckets(cfg) {
		exists, err := client.BucketExists(ctx, bucket)
		if err != nil {
			return fmt.Errorf("failed to check bucket %s: %w", bucket, err)
		}
		if !exists {
			if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
			logger.Info("MinIO bucket created", zap.String("bucket", bucket))
		}

		// 媒体文件与播放列表由播放器和其他节点直接拉取
		if err := client.SetBucketPolicy(ctx, bucket, PublicReadPolicy(bucket)); err != nil {
			return fmt.Errorf("failed to set public policy for %s: %w", bucket, err)
		}
	}

	logger.Info("MinIO connected",
		zap.String("endpoint", cfg.Endpoint),
		zap.Strings("buckets", MediaBuckets(cfg)),
	)
	return nil
}

// Get 获取 MinIO 客户端实例
func Get() *minio.Client {
	return client
}

// MediaBuckets 已配置的媒体桶
func MediaBuckets(cfg *config.MinIOConfig) []string {
	var buckets []string
	for _, b := range []string{cfg.WebVideosBucket, cfg.StreamingBucket} {
		if b != "" {
			buckets = append(buckets, b)
		}
	}
	return buckets
}

// PublicReadPolicy 桶内对象匿名可读
func PublicReadPolicy(bucket string) string {
	return fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`, bucket)
}

// PublicBaseURL 桶的公开访问地址；配置了 public_base_url（CDN）时以它为前缀
func PublicBaseURL(cfg *config.MinIOConfig, bucket string) string {
	if !cfg.Enabled || bucket == "" {
		return ""
	}
	if base := strings.TrimSuffix(cfg.PublicBaseOverride, "/"); base != "" {
		return base + "/" + bucket
	}
	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, bucket)
}
