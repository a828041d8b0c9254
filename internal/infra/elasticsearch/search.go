package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// SearchQuery 站内搜索条件，From/Size 为分页偏移
type SearchQuery struct {
	Q         string
	LocalOnly bool
	Category  int
	From      int
	Size      int
}

// SearchHit 命中的视频 ID 与高亮片段
type SearchHit struct {
	ID        int64
	Highlight map[string][]string
}

// BuildSearchQuery 生成 bool 查询；关键词过短时退化为 should 匹配
func BuildSearchQuery(q SearchQuery) map[string]interface{} {
	filter := []interface{}{}
	must := []interface{}{}
	boolQ := map[string]interface{}{}

	if q.LocalOnly {
		filter = append(filter, map[string]interface{}{"term": map[string]interface{}{"is_local": true}})
	}
	if q.Category > 0 {
		filter = append(filter, map[string]interface{}{"term": map[string]interface{}{"category": q.Category}})
	}

	keyword := strings.TrimSpace(q.Q)
	if keyword != "" {
		match := map[string]interface{}{
			"query":    keyword,
			"fields":   []string{"name^3", "tags^2", "description"},
			"type":     "best_fields",
			"operator": "or",
		}
		if len([]rune(keyword)) <= 2 {
			boolQ["should"] = []interface{}{map[string]interface{}{"multi_match": match}}
			boolQ["minimum_should_match"] = 1
		} else {
			match["minimum_should_match"] = "50%"
			must = append(must, map[string]interface{}{"multi_match": match})
		}
	}
	boolQ["filter"] = filter
	boolQ["must"] = must

	query := map[string]interface{}{
		"query":   map[string]interface{}{"bool": boolQ},
		"_source": []string{"id"},
		"from":    q.From,
		"size":    q.Size,
		"sort": []interface{}{
			map[string]interface{}{"_score": map[string]string{"order": "desc"}},
			map[string]interface{}{"published_at": map[string]string{"order": "desc"}},
		},
		"track_total_hits": true,
	}
	if keyword != "" {
		query["highlight"] = map[string]interface{}{
			"fields": map[string]interface{}{
				"name":        map[string]interface{}{},
				"description": map[string]interface{}{},
			},
			"pre_tags":  []string{"<em>"},
			"post_tags": []string{"</em>"},
		}
	}
	return query
}

// Search 按相关度返回命中的视频 ID，顺序即排名
func (x *Indexer) Search(ctx context.Context, q SearchQuery) ([]SearchHit, int64, error) {
	body, err := json.Marshal(BuildSearchQuery(q))
	if err != nil {
		return nil, 0, err
	}

	resp, err := x.client.Search(
		x.client.Search.WithContext(ctx),
		x.client.Search.WithIndex(x.index),
		x.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return nil, 0, fmt.Errorf("search failed: %s", resp.String())
	}

	var esResp struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source struct {
					ID int64 `json:"id"`
				} `json:"_source"`
				Highlight map[string][]string `json:"highlight"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&esResp); err != nil {
		return nil, 0, fmt.Errorf("decode search response: %w", err)
	}

	hits := make([]SearchHit, 0, len(esResp.Hits.Hits))
	for _, h := range esResp.Hits.Hits {
		hits = append(hits, SearchHit{ID: h.Source.ID, Highlight: h.Highlight})
	}
	return hits, esResp.Hits.Total.Value, nil
}
