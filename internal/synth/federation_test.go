package synth

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"vida-fed/internal/api/dto"
)

func TestFederationOwnedProgressive(t *testing.T) {
	s := newTestSynth()
	v := ownedVideo()

	got, err := s.Federation(v)
	require.NoError(t, err)

	require.Len(t, got.URL, 13)
	assert.Equal(t, dto.APLink{Type: "Link", MediaType: "text/html", Href: "https://videos.example/videos/watch/" + testUUID}, got.URL[0])

	wantTypes := []string{"video/mp4", "application/json", "application/x-bittorrent", "application/x-bittorrent;x-scheme-handler/magnet"}
	wantHeights := []int{1080, 720, 360}
	for i, height := range wantHeights {
		group := got.URL[1+4*i : 5+4*i]
		for j, link := range group {
			assert.Equal(t, wantTypes[j], link.MediaType, "file %d link %d", i, j)
			require.NotNil(t, link.Height)
			assert.Equal(t, height, *link.Height)
		}
		assert.Equal(t, []string{"metadata", "video/mp4"}, group[1].Rel)
	}

	assert.Equal(t, "Video", got.Type)
	assert.Equal(t, v.URL, got.ID)
	assert.Equal(t, "PT125S", got.Duration)
	assert.Equal(t, "2024-03-09T14:30:00.000Z", got.Published)
	assert.Equal(t, "2024-03-09T15:30:00.000Z", got.Updated)
	assert.Nil(t, got.OriginallyPublishedAt)
	assert.Equal(t, &dto.APIdentifier{Identifier: "15", Name: "Science & Technology"}, got.Category)
	assert.Equal(t, &dto.APIdentifier{Identifier: "en", Name: "English"}, got.Language)
	assert.Equal(t, v.URL+"/likes", got.Likes)
	assert.Equal(t, v.URL+"/comments", got.Comments)
	assert.Equal(t, []dto.APTag{{Type: "Hashtag", Name: "sunset"}, {Type: "Hashtag", Name: "timelapse"}}, got.Tag)

	require.Len(t, got.Icon, 2)
	assert.Equal(t, dto.APIcon{Type: "Image", URL: "https://videos.example/static/thumbnails/" + testUUID + ".jpg", MediaType: "image/jpeg", Width: 280, Height: 157}, got.Icon[0])
	assert.Equal(t, 850, got.Icon[1].Width)

	require.Len(t, got.SubtitleLanguage, 1)
	assert.Equal(t, dto.APSubtitle{
		Identifier: "fr",
		Name:       "French",
		URL:        "https://videos.example/lazy-static/video-captions/" + testUUID + "-fr.vtt",
	}, got.SubtitleLanguage[0])
}

func TestFederationAttributionOrder(t *testing.T) {
	s := newTestSynth()
	for _, v := range []*Video{ownedVideo(), federatedVideo()} {
		got, err := s.Federation(v)
		require.NoError(t, err)
		require.Len(t, got.AttributedTo, 2)
		assert.Equal(t, dto.APActor{Type: "Person", ID: v.Account.ActorURL}, got.AttributedTo[0])
		assert.Equal(t, dto.APActor{Type: "Group", ID: v.Channel.ActorURL}, got.AttributedTo[1])
	}
}

func TestFederationAttributionFallsBackToOrigin(t *testing.T) {
	v := ownedVideo()
	v.Account.ActorURL = ""
	v.Channel.ActorURL = ""

	got, err := newTestSynth().Federation(v)
	require.NoError(t, err)
	assert.Equal(t, "https://videos.example/accounts/alice", got.AttributedTo[0].ID)
	assert.Equal(t, "https://videos.example/video-channels/alice_channel", got.AttributedTo[1].ID)
}

func TestFederationPlaylist(t *testing.T) {
	s := newTestSynth()
	v := federatedVideo()

	got, err := s.Federation(v)
	require.NoError(t, err)

	require.Len(t, got.URL, 2)
	playlist := got.URL[1]
	assert.Equal(t, "application/x-mpegURL", playlist.MediaType)
	assert.Equal(t, "https://peer.example/static/streaming-playlists/hls/"+testUUID+"/master.m3u8", playlist.Href)

	// 2 个 Infohash + sha256 链接 + 每个文件 4 条
	require.Len(t, playlist.Tag, 2+1+8)
	assert.Equal(t, "Infohash", playlist.Tag[0].Type)
	assert.Equal(t, "Infohash", playlist.Tag[1].Type)
	assert.Equal(t, dto.APTag{
		Type:      "Link",
		Name:      "sha256",
		MediaType: "application/json",
		Href:      "https://peer.example/static/streaming-playlists/hls/" + testUUID + "/segments-sha256.json",
	}, playlist.Tag[2])
	assert.Regexp(t, `^https://peer\.example/.*-720-fragmented\.mp4$`, playlist.Tag[3].Href)
	assert.Equal(t, 720, *playlist.Tag[3].Height)
	assert.Equal(t, 480, *playlist.Tag[7].Height)
}

func TestFederationOmitsMagnetAndMetadataWhenUnknown(t *testing.T) {
	v := ownedVideo()
	v.Files = []File{{Resolution: 720, Extname: ".webm", Size: 10}}

	got, err := newTestSynth().Federation(v)
	require.NoError(t, err)

	require.Len(t, got.URL, 3)
	assert.Equal(t, "video/webm", got.URL[1].MediaType)
	assert.Equal(t, "application/x-bittorrent", got.URL[2].MediaType)
}

func TestFederationLiveFields(t *testing.T) {
	s := newTestSynth()

	vod, err := s.Federation(ownedVideo())
	require.NoError(t, err)
	assert.False(t, vod.IsLiveBroadcast)
	assert.Nil(t, vod.LiveSaveReplay)
	assert.Nil(t, vod.PermanentLive)

	raw, err := json.Marshal(vod)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "liveSaveReplay")
	assert.NotContains(t, string(raw), "permanentLive")

	live := ownedVideo()
	live.IsLive = true
	live.Live = mo.Some(LiveSettings{SaveReplay: true})
	got, err := s.Federation(live)
	require.NoError(t, err)
	assert.True(t, got.IsLiveBroadcast)
	require.NotNil(t, got.LiveSaveReplay)
	assert.True(t, *got.LiveSaveReplay)
	require.NotNil(t, got.PermanentLive)
	assert.False(t, *got.PermanentLive)
}

func TestFederationOptionalFields(t *testing.T) {
	v := ownedVideo()
	v.Category = 0
	v.Licence = 0
	v.Language = ""
	published := time.Date(2001, 1, 2, 3, 4, 5, 0, time.UTC)
	v.OriginallyPublishedAt = &published

	got, err := newTestSynth().Federation(v)
	require.NoError(t, err)
	assert.Nil(t, got.Category)
	assert.Nil(t, got.Licence)
	assert.Nil(t, got.Language)
	require.NotNil(t, got.OriginallyPublishedAt)
	assert.Equal(t, "2001-01-02T03:04:05.000Z", *got.OriginallyPublishedAt)
}

func TestFederationRequiresAttribution(t *testing.T) {
	s := newTestSynth()

	noChannel := ownedVideo()
	noChannel.Channel = nil
	_, err := s.Federation(noChannel)
	assert.ErrorIs(t, err, ErrIncompleteVideoForFederation)

	_, err = s.Detail(noChannel, Moderation{})
	assert.NoError(t, err)
	assert.NotEmpty(t, s.Summary(noChannel).UUID)

	noAccount := ownedVideo()
	noAccount.Account = nil
	_, err = s.Federation(noAccount)
	assert.ErrorIs(t, err, ErrIncompleteVideoForFederation)
}

// Detail 与 Federation 的文件顺序必须一致
func TestFileOrderConsistentAcrossProjections(t *testing.T) {
	s := newTestSynth()
	v := ownedVideo()
	v.Files = append(v.Files, File{ID: 4, Resolution: 720, FPS: 60, Extname: ".mp4", InfoHash: "ffffffffffffffffffffffffffffffffffffffff"})

	detail, err := s.Detail(v, Moderation{})
	require.NoError(t, err)
	obj, err := s.Federation(v)
	require.NoError(t, err)

	var fromDetail, fromFederation []string
	for _, f := range detail.Files {
		fromDetail = append(fromDetail, f.FileURL)
	}
	for _, l := range obj.URL[1:] {
		if l.MediaType == "video/mp4" {
			fromFederation = append(fromFederation, l.Href)
		}
	}
	assert.Equal(t, fromDetail, fromFederation)
	assert.Equal(t, 30, detail.Files[1].FPS)
	assert.Equal(t, 60, detail.Files[2].FPS)
}

func TestProjectionsAreDeterministic(t *testing.T) {
	s := newTestSynth()
	v := ownedVideo()
	v.StreamingPlaylists = federatedVideo().StreamingPlaylists

	wantDetail, err := s.Detail(v, Moderation{})
	require.NoError(t, err)
	wantObj, err := s.Federation(v)
	require.NoError(t, err)
	wantJSON, err := json.Marshal(wantObj)
	require.NoError(t, err)

	var g errgroup.Group
	for i := 0; i < 16; i++ {
		g.Go(func() error {
			detail, err := s.Detail(v, Moderation{})
			if err != nil {
				return err
			}
			if diff := cmp.Diff(wantDetail, detail); diff != "" {
				t.Errorf("detail differs (-want +got):\n%s", diff)
			}
			obj, err := s.Federation(v)
			if err != nil {
				return err
			}
			raw, err := json.Marshal(obj)
			if err != nil {
				return err
			}
			if string(raw) != string(wantJSON) {
				t.Errorf("federation object not byte-identical")
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}
