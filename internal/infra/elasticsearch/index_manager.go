package elasticsearch

import (
	"context"
	"fmt"
	"strings"

	"vida-fed/pkg/logger"

	"go.uber.org/zap"
)

// VideosIndexMapping 视频摘要索引的 mapping
func VideosIndexMapping() string {
	return `{
		"settings": {
			"number_of_shards": 1,
			"number_of_replicas": 0
		},
		"mappings": {
			"properties": {
				"id": {"type": "long"},
				"uuid": {"type": "keyword"},
				"short_uuid": {"type": "keyword"},
				"name": {
					"type": "text",
					"fields": {"keyword": {"type": "keyword", "ignore_above": 200}}
				},
				"description": {"type": "text"},
				"category": {"type": "integer"},
				"category_label": {"type": "keyword"},
				"licence": {"type": "integer"},
				"language": {"type": "keyword"},
				"nsfw": {"type": "boolean"},
				"is_local": {"type": "boolean"},
				"is_live": {"type": "boolean"},
				"host": {"type": "keyword"},
				"channel_name": {"type": "keyword"},
				"account_name": {"type": "keyword"},
				"tags": {"type": "keyword"},
				"duration": {"type": "integer"},
				"views": {"type": "long"},
				"likes": {"type": "long"},
				"dislikes": {"type": "long"},
				"thumbnail_path": {"type": "keyword", "index": false},
				"embed_path": {"type": "keyword", "index": false},
				"published_at": {"type": "date", "format": "strict_date_optional_time||epoch_millis"},
				"created_at": {"type": "date", "format": "strict_date_optional_time||epoch_millis"},
				"updated_at": {"type": "date", "format": "strict_date_optional_time||epoch_millis"}
			}
		}
	}`
}

// EnsureIndex 确保索引存在，不存在则创建
func (x *Indexer) EnsureIndex(ctx context.Context) error {
	resp, err := x.client.Indices.Exists([]string{x.index}, x.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("check index exists: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode == 200 {
		logger.Info("Elasticsearch videos index already exists", zap.String("index", x.index))
		return nil
	}

	created, err := x.client.Indices.Create(
		x.index,
		x.client.Indices.Create.WithContext(ctx),
		x.client.Indices.Create.WithBody(strings.NewReader(VideosIndexMapping())),
	)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer created.Body.Close()
	if created.IsError() {
		return fmt.Errorf("create index failed: %s", created.String())
	}

	logger.Info("Elasticsearch videos index created", zap.String("index", x.index))
	return nil
}
