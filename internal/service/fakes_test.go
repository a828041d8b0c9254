package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	infraES "vida-fed/internal/infra/elasticsearch"
	infraRedis "vida-fed/internal/infra/redis"
	"vida-fed/internal/model"
	"vida-fed/internal/repository"
	"vida-fed/internal/synth"
)

const (
	localUUID  = "9c9de5e8-0a1e-484a-b099-e80766180a6d"
	remoteUUID = "2f0c5d3e-6a53-4c4b-8f0a-3b1f1d1e9b77"
)

type fakeStore struct {
	mu     sync.Mutex
	videos map[int64]*model.Video
	loads  atomic.Int64
}

func newFakeStore(videos ...*model.Video) *fakeStore {
	s := &fakeStore{videos: map[int64]*model.Video{}}
	for _, v := range videos {
		s.videos[v.ID] = v
	}
	return s
}

func (s *fakeStore) GetFullByID(_ context.Context, id int64) (*model.Video, error) {
	s.loads.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.videos[id]; ok {
		return v, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeStore) GetFullByUUID(_ context.Context, uuid string) (*model.Video, error) {
	s.loads.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.videos {
		if v.UUID == uuid {
			return v, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeStore) ListVideos(_ context.Context, skip, limit int, filter repository.ListFilter) ([]model.Video, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []model.Video
	for id := int64(1); id <= int64(len(s.videos))+10; id++ {
		v, ok := s.videos[id]
		if !ok || v.Privacy != privacyPublic || v.Blacklist != nil {
			continue
		}
		if filter.LocalOnly && v.Remote {
			continue
		}
		all = append(all, *v)
	}
	total := int64(len(all))
	if skip >= len(all) {
		return nil, total, nil
	}
	end := skip + limit
	if end > len(all) {
		end = len(all)
	}
	return all[skip:end], total, nil
}

func (s *fakeStore) ListLocalIDs(_ context.Context, afterID int64, limit int) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []int64
	for id := afterID + 1; id <= afterID+100 && len(ids) < limit; id++ {
		if v, ok := s.videos[id]; ok && !v.Remote {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

type published struct {
	Topic string
	Key   string
	Value any
}

type fakePublisher struct {
	mu       sync.Mutex
	messages []published
	err      error
}

func (p *fakePublisher) PublishJSON(_ context.Context, topic, key string, v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, published{Topic: topic, Key: key, Value: v})
	return nil
}

type fakeIndex struct {
	mu      sync.Mutex
	docs    map[int64]infraES.SummaryDoc
	deleted []int64
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{docs: map[int64]infraES.SummaryDoc{}}
}

func (x *fakeIndex) Index(_ context.Context, doc infraES.SummaryDoc) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.docs[doc.ID] = doc
	return nil
}

func (x *fakeIndex) Delete(_ context.Context, id int64) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	delete(x.docs, id)
	x.deleted = append(x.deleted, id)
	return nil
}

func (x *fakeIndex) BulkIndex(ctx context.Context, docs []infraES.SummaryDoc) (int, int, error) {
	for _, d := range docs {
		_ = x.Index(ctx, d)
	}
	return len(docs), 0, nil
}

func newTestCache(t *testing.T) (*infraRedis.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return infraRedis.NewCache(client, "vida:"), mr
}

func testSynthConfig() synth.Config {
	return synth.Config{
		Origin: synth.OriginConfig{
			Self: synth.SelfOrigin{Scheme: "https", Hostname: "videos.example", Port: 443, WSScheme: "wss"},
		},
	}
}

func localVideo() *model.Video {
	id := int64(1)
	at := time.Date(2024, 3, 9, 14, 30, 0, 0, time.UTC)
	return &model.Video{
		ID:          id,
		UUID:        localUUID,
		URL:         "https://videos.example/videos/watch/" + localUUID,
		ChannelID:   9,
		Name:        "Sunset timelapse",
		Description: "A slow sunset over the bay.",
		Category:    15,
		Licence:     1,
		Language:    "en",
		Privacy:     privacyPublic,
		State:       1,
		Duration:    125,
		PublishedAt: at,
		CreatedAt:   at,
		UpdatedAt:   at,
		Channel: &model.Channel{
			ID: 9, Name: "alice_channel", ActorURL: "https://videos.example/video-channels/alice_channel",
			Account: &model.Account{ID: 7, Name: "alice", ActorURL: "https://videos.example/accounts/alice"},
		},
		Files: []model.VideoFile{
			{ID: 3, VideoID: &id, Resolution: 360, Extname: ".mp4", InfoHash: "cccccccccccccccccccccccccccccccccccccccc"},
			{ID: 1, VideoID: &id, Resolution: 1080, Extname: ".mp4", InfoHash: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"},
			{ID: 2, VideoID: &id, Resolution: 720, Extname: ".mp4", InfoHash: "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"},
		},
		Tags: []model.Tag{{ID: 1, Name: "sunset"}},
	}
}

func remoteVideo() *model.Video {
	host := "peer.example"
	v := localVideo()
	v.ID = 2
	v.UUID = remoteUUID
	v.URL = "https://peer.example/videos/watch/" + remoteUUID
	v.Remote = true
	v.RemoteHost = &host
	v.Files = nil
	v.StreamingPlaylists = []model.StreamingPlaylist{{
		ID: 4, VideoID: 2, Type: 1,
		Files:        []model.VideoFile{{ID: 20, Resolution: 720, Extname: ".mp4"}, {ID: 21, Resolution: 480, Extname: ".mp4"}},
		Redundancies: []model.VideoRedundancy{{ID: 1, BaseURL: "https://mirror.example/hls/" + remoteUUID}},
	}}
	return v
}

func (s *fakeStore) ListByIDs(_ context.Context, ids []int64) ([]model.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Video
	for _, id := range ids {
		if v, ok := s.videos[id]; ok {
			out = append(out, *v)
		}
	}
	return out, nil
}
