package synth

import (
	"testing"
	"time"

	"github.com/samber/mo"
	"go.uber.org/goleak"
)

const testUUID = "9c9de5e8-0a1e-484a-b099-e80766180a6d"

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testConfig() Config {
	return Config{
		Origin: OriginConfig{
			Self: SelfOrigin{Scheme: "https", Hostname: "videos.example", Port: 443, WSScheme: "wss"},
		},
	}
}

func newTestSynth() *Synthesizer {
	return New(testConfig())
}

func testTime() time.Time {
	return time.Date(2024, 3, 9, 14, 30, 0, 0, time.UTC)
}

// 本地视频，三个整文件，插入顺序故意打乱
func ownedVideo() *Video {
	return &Video{
		ID:              42,
		UUID:            testUUID,
		URL:             "https://videos.example/videos/watch/" + testUUID,
		Name:            "Sunset timelapse",
		Description:     "A slow sunset over the bay.",
		Support:         "Tip jar: https://tips.example",
		Category:        15,
		Licence:         1,
		Language:        "en",
		Privacy:         1,
		State:           1,
		CommentsEnabled: true,
		DownloadEnabled: true,
		Duration:        125,
		Views:           1200,
		Likes:           30,
		Dislikes:        2,
		CreatedAt:       testTime(),
		UpdatedAt:       testTime().Add(time.Hour),
		PublishedAt:     testTime(),
		IsLocal:         true,
		Account:         &Account{ID: 7, Name: "alice", DisplayName: "Alice", Host: "videos.example", ActorURL: "https://videos.example/accounts/alice"},
		Channel:         &Channel{ID: 9, Name: "alice_channel", DisplayName: "Alice's channel", Host: "videos.example", ActorURL: "https://videos.example/video-channels/alice_channel"},
		Tags:            []string{"sunset", "timelapse"},
		Files: []File{
			{ID: 3, Resolution: 360, FPS: 30, Size: 1_000_000, Extname: ".mp4", InfoHash: "cccccccccccccccccccccccccccccccccccccccc"},
			{ID: 1, Resolution: 1080, FPS: 30, Size: 9_000_000, Extname: ".mp4", InfoHash: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"},
			{ID: 2, Resolution: 720, FPS: 30, Size: 4_000_000, Extname: ".mp4", InfoHash: "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"},
		},
		Captions: []Caption{{Language: "fr"}},
	}
}

// 联邦视频，只有一个 HLS 播放列表（两个文件、一个镜像）
func federatedVideo() *Video {
	v := ownedVideo()
	v.IsLocal = false
	v.RemoteHost = mo.Some("peer.example")
	v.URL = "https://peer.example/videos/watch/" + testUUID
	v.Account = &Account{ID: 70, Name: "bob", Host: "peer.example", ActorURL: "https://peer.example/accounts/bob"}
	v.Channel = &Channel{ID: 90, Name: "bob_channel", Host: "peer.example", ActorURL: "https://peer.example/video-channels/bob_channel"}
	v.Files = nil
	v.StreamingPlaylists = []StreamingPlaylist{{
		ID:   5,
		Type: PlaylistTypeHLS,
		Files: []File{
			{ID: 11, Resolution: 480, FPS: 25, Size: 2_000_000, Extname: ".mp4", InfoHash: "dddddddddddddddddddddddddddddddddddddddd"},
			{ID: 10, Resolution: 720, FPS: 25, Size: 5_000_000, Extname: ".mp4", InfoHash: "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee"},
		},
		Redundancies: []RedundancyMirror{{BaseURL: "https://mirror.example/static/redundancy/hls/" + testUUID}},
	}}
	return v
}
