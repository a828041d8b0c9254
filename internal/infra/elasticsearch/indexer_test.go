package elasticsearch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vida-fed/internal/api/dto"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   string
}

// 假的 ES 节点：记录请求，按路由返回预设状态
type fakeES struct {
	mu       sync.Mutex
	requests []recordedRequest
	status   map[string]int
	body     map[string]string
}

func (f *fakeES) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	key := r.Method + " " + r.URL.Path

	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{Method: r.Method, Path: r.URL.Path, Body: string(raw)})
	status, ok := f.status[key]
	body := f.body[key]
	f.mu.Unlock()

	if !ok {
		status = http.StatusOK
	}
	if body == "" {
		body = `{}`
	}
	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func newTestIndexer(t *testing.T, fake *fakeES) *Indexer {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewIndexer(es, "vida-videos")
}

func testSummary() dto.VideoSummary {
	at := time.Date(2024, 3, 9, 14, 30, 0, 0, time.UTC)
	return dto.VideoSummary{
		ID:          42,
		UUID:        "9c9de5e8-0a1e-484a-b099-e80766180a6d",
		ShortUUID:   "kkGMgK9ZtnKfYAgnEtQxbv",
		Name:        "Sunset timelapse",
		Category:    dto.Constant{ID: 15, Label: "Science & Technology"},
		Language:    dto.LanguageConstant{ID: "en", Label: "English"},
		IsLocal:     true,
		PublishedAt: at,
		CreatedAt:   at,
		UpdatedAt:   at,
	}
}

func TestNewSummaryDoc(t *testing.T) {
	doc := NewSummaryDoc(testSummary(), DocOwner{ChannelName: "alice_channel", AccountName: "alice"})

	assert.Equal(t, int64(42), doc.ID)
	assert.Equal(t, "Science & Technology", doc.CategoryLabel)
	assert.Equal(t, "en", doc.Language)
	assert.Equal(t, "2024-03-09T14:30:00Z", doc.PublishedAt)
	assert.NotNil(t, doc.Tags)
}

func TestIndexerIndex(t *testing.T) {
	fake := &fakeES{}
	x := newTestIndexer(t, fake)

	err := x.Index(context.Background(), NewSummaryDoc(testSummary(), DocOwner{Tags: []string{"sunset"}}))
	require.NoError(t, err)

	require.Len(t, fake.requests, 1)
	assert.Equal(t, http.MethodPut, fake.requests[0].Method)
	assert.Equal(t, "/vida-videos/_doc/42", fake.requests[0].Path)

	var sent SummaryDoc
	require.NoError(t, json.Unmarshal([]byte(fake.requests[0].Body), &sent))
	assert.Equal(t, []string{"sunset"}, sent.Tags)
}

func TestIndexerIndexFailure(t *testing.T) {
	fake := &fakeES{status: map[string]int{"PUT /vida-videos/_doc/42": http.StatusBadRequest}}
	x := newTestIndexer(t, fake)

	err := x.Index(context.Background(), NewSummaryDoc(testSummary(), DocOwner{}))
	assert.Error(t, err)
}

func TestIndexerDeleteIgnoresMissing(t *testing.T) {
	fake := &fakeES{status: map[string]int{"DELETE /vida-videos/_doc/7": http.StatusNotFound}}
	x := newTestIndexer(t, fake)

	assert.NoError(t, x.Delete(context.Background(), 7))
}

func TestIndexerBulkIndex(t *testing.T) {
	fake := &fakeES{body: map[string]string{
		"POST /_bulk": `{"errors":true,"items":[{"index":{"status":201}},{"index":{"status":400}}]}`,
	}}
	x := newTestIndexer(t, fake)

	first := NewSummaryDoc(testSummary(), DocOwner{})
	second := first
	second.ID = 43

	success, failed, err := x.BulkIndex(context.Background(), []SummaryDoc{first, second})
	require.NoError(t, err)
	assert.Equal(t, 1, success)
	assert.Equal(t, 1, failed)

	lines := strings.Split(strings.TrimSpace(fake.requests[0].Body), "\n")
	require.Len(t, lines, 4)
	assert.JSONEq(t, `{"index":{"_index":"vida-videos","_id":"42"}}`, lines[0])
	assert.JSONEq(t, `{"index":{"_index":"vida-videos","_id":"43"}}`, lines[2])

	success, failed, err = x.BulkIndex(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, success+failed)
}

func TestEnsureIndexCreatesWhenMissing(t *testing.T) {
	fake := &fakeES{status: map[string]int{"HEAD /vida-videos": http.StatusNotFound}}
	x := newTestIndexer(t, fake)

	require.NoError(t, x.EnsureIndex(context.Background()))
	require.Len(t, fake.requests, 2)
	assert.Equal(t, http.MethodPut, fake.requests[1].Method)
	assert.Equal(t, "/vida-videos", fake.requests[1].Path)
	assert.Contains(t, fake.requests[1].Body, `"short_uuid"`)
}

func TestEnsureIndexExisting(t *testing.T) {
	fake := &fakeES{}
	x := newTestIndexer(t, fake)

	require.NoError(t, x.EnsureIndex(context.Background()))
	assert.Len(t, fake.requests, 1)
}

func TestNormalizeHosts(t *testing.T) {
	assert.Equal(t, []string{"http://es:9200", "https://es2:9200"}, NormalizeHosts([]string{" es:9200 ", "", "https://es2:9200"}))
}
