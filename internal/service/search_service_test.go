package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infraES "vida-fed/internal/infra/elasticsearch"
	"vida-fed/internal/model"
	"vida-fed/internal/repository"
)

type fakeSearchIndex struct {
	hits  []infraES.SearchHit
	total int64
	err   error
	query infraES.SearchQuery
}

func (f *fakeSearchIndex) Search(_ context.Context, q infraES.SearchQuery) ([]infraES.SearchHit, int64, error) {
	f.query = q
	return f.hits, f.total, f.err
}

func searchVideos() []*model.Video {
	public := numbered(1, privacyPublic)
	other := numbered(2, privacyPublic)
	other.Name = "Moonrise"
	stale := numbered(3, 3)
	return []*model.Video{public, other, stale}
}

func TestSearchUsesIndexRanking(t *testing.T) {
	index := &fakeSearchIndex{
		hits: []infraES.SearchHit{
			{ID: 2, Highlight: map[string][]string{"name": {"<em>Moon</em>rise"}}},
			{ID: 3},
			{ID: 99},
			{ID: 1},
		},
		total: 4,
	}
	svc := NewSearchService(newFakeStore(searchVideos()...), NewSynthHolder(testSynthConfig()), index)

	data, err := svc.Search(context.Background(), 2, 4, repository.ListFilter{Search: "  moon ", LocalOnly: true, Category: 15})
	require.NoError(t, err)

	assert.Equal(t, infraES.SearchQuery{Q: "moon", LocalOnly: true, Category: 15, From: 4, Size: 4}, index.query)
	assert.Equal(t, "elasticsearch", data.Source)
	assert.Equal(t, int64(4), data.Total)
	assert.Equal(t, int64(1), data.TotalPages)
	// 私有视频与已删除视频不返回
	require.Len(t, data.Videos, 2)
	assert.Equal(t, int64(2), data.Videos[0].ID)
	assert.Equal(t, "Moonrise", data.Videos[0].Name)
	assert.Equal(t, []string{"<em>Moon</em>rise"}, data.Videos[0].Highlight["name"])
	assert.Equal(t, int64(1), data.Videos[1].ID)
	assert.Nil(t, data.Videos[1].Highlight)
}

func TestSearchFallsBackToDatabase(t *testing.T) {
	index := &fakeSearchIndex{err: errors.New("index unavailable")}
	svc := NewSearchService(newFakeStore(searchVideos()...), NewSynthHolder(testSynthConfig()), index)

	data, err := svc.Search(context.Background(), 1, 10, repository.ListFilter{Search: "sun"})
	require.NoError(t, err)
	assert.Equal(t, "database", data.Source)
	assert.Equal(t, int64(2), data.Total)
	assert.Len(t, data.Videos, 2)
}

func TestSearchWithoutIndex(t *testing.T) {
	svc := NewSearchService(newFakeStore(searchVideos()...), NewSynthHolder(testSynthConfig()), nil)

	data, err := svc.Search(context.Background(), 1, 1, repository.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, "database", data.Source)
	assert.Equal(t, int64(2), data.TotalPages)
	require.Len(t, data.Videos, 1)
	assert.Equal(t, "1111111111111111111112", data.Videos[0].ShortUUID)
}
