package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"vida-fed/internal/api/dto"
	"vida-fed/pkg/logger"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"
)

// SummaryDoc 视频摘要文档，供站内搜索
type SummaryDoc struct {
	ID            int64    `json:"id"`
	UUID          string   `json:"uuid"`
	ShortUUID     string   `json:"short_uuid"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Category      int      `json:"category"`
	CategoryLabel string   `json:"category_label"`
	Licence       int      `json:"licence"`
	Language      string   `json:"language"`
	NSFW          bool     `json:"nsfw"`
	IsLocal       bool     `json:"is_local"`
	IsLive        bool     `json:"is_live"`
	Host          string   `json:"host,omitempty"`
	ChannelName   string   `json:"channel_name,omitempty"`
	AccountName   string   `json:"account_name,omitempty"`
	Tags          []string `json:"tags"`
	Duration      int      `json:"duration"`
	Views         int64    `json:"views"`
	Likes         int64    `json:"likes"`
	Dislikes      int64    `json:"dislikes"`
	ThumbnailPath string   `json:"thumbnail_path"`
	EmbedPath     string   `json:"embed_path"`
	PublishedAt   string   `json:"published_at"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
}

// DocOwner 摘要中没有的归属信息
type DocOwner struct {
	Host        string
	ChannelName string
	AccountName string
	Tags        []string
}

// NewSummaryDoc 由摘要投影生成索引文档
func NewSummaryDoc(s dto.VideoSummary, owner DocOwner) SummaryDoc {
	tags := owner.Tags
	if tags == nil {
		tags = []string{}
	}
	return SummaryDoc{
		ID:            s.ID,
		UUID:          s.UUID,
		ShortUUID:     s.ShortUUID,
		Name:          s.Name,
		Description:   s.Description,
		Category:      s.Category.ID,
		CategoryLabel: s.Category.Label,
		Licence:       s.Licence.ID,
		Language:      s.Language.ID,
		NSFW:          s.NSFW,
		IsLocal:       s.IsLocal,
		IsLive:        s.IsLive,
		Host:          owner.Host,
		ChannelName:   owner.ChannelName,
		AccountName:   owner.AccountName,
		Tags:          tags,
		Duration:      s.Duration,
		Views:         s.Views,
		Likes:         s.Likes,
		Dislikes:      s.Dislikes,
		ThumbnailPath: s.ThumbnailPath,
		EmbedPath:     s.EmbedPath,
		PublishedAt:   s.PublishedAt.UTC().Format(time.RFC3339),
		CreatedAt:     s.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     s.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// Indexer 维护单个视频摘要索引
type Indexer struct {
	client *elasticsearch.Client
	index  string
}

func NewIndexer(client *elasticsearch.Client, index string) *Indexer {
	return &Indexer{client: client, index: index}
}

// Index 写入或覆盖单个文档
func (x *Indexer) Index(ctx context.Context, doc SummaryDoc) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	resp, err := x.client.Index(
		x.index,
		bytes.NewReader(body),
		x.client.Index.WithContext(ctx),
		x.client.Index.WithDocumentID(strconv.FormatInt(doc.ID, 10)),
	)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("index document failed: %s", resp.String())
	}

	logger.Debug("Video summary indexed", zap.Int64("video_id", doc.ID))
	return nil
}

// Delete 删除文档，文档不存在不算错误
func (x *Indexer) Delete(ctx context.Context, videoID int64) error {
	resp, err := x.client.Delete(x.index, strconv.FormatInt(videoID, 10), x.client.Delete.WithContext(ctx))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() && resp.StatusCode != 404 {
		return fmt.Errorf("delete document failed: %s", resp.String())
	}
	return nil
}

// BulkIndex 批量写入，返回成功与失败条数
func (x *Indexer) BulkIndex(ctx context.Context, docs []SummaryDoc) (success, failed int, err error) {
	if len(docs) == 0 {
		return 0, 0, nil
	}

	var buf bytes.Buffer
	for _, doc := range docs {
		action := map[string]map[string]string{
			"index": {"_index": x.index, "_id": strconv.FormatInt(doc.ID, 10)},
		}
		meta, _ := json.Marshal(action)
		body, err := json.Marshal(doc)
		if err != nil {
			return 0, len(docs), err
		}
		buf.Write(meta)
		buf.WriteByte('\n')
		buf.Write(body)
		buf.WriteByte('\n')
	}

	resp, err := x.client.Bulk(&buf, x.client.Bulk.WithContext(ctx))
	if err != nil {
		return 0, len(docs), err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return 0, len(docs), fmt.Errorf("bulk failed: %s", resp.String())
	}

	var bulkResp struct {
		Errors bool `json:"errors"`
		Items  []struct {
			Index struct {
				Status int `json:"status"`
			} `json:"index"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&bulkResp); err != nil {
		return 0, len(docs), fmt.Errorf("decode bulk response: %w", err)
	}

	for _, item := range bulkResp.Items {
		if item.Index.Status >= 200 && item.Index.Status < 300 {
			success++
		} else {
			failed++
		}
	}

	logger.Info("Bulk index to ES completed", zap.Int("success", success), zap.Int("failed", failed))
	return success, failed, nil
}
