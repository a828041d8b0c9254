package synth

import (
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetailOwnedProgressive(t *testing.T) {
	s := newTestSynth()
	v := ownedVideo()

	got, err := s.Detail(v, Moderation{})
	require.NoError(t, err)

	require.Len(t, got.Files, 3)
	assert.Equal(t, 1080, got.Files[0].Resolution.ID)
	assert.Equal(t, 720, got.Files[1].Resolution.ID)
	assert.Equal(t, 360, got.Files[2].Resolution.ID)
	for _, f := range got.Files {
		assert.NotEmpty(t, f.MagnetURI)
	}
	assert.Equal(t, s.Summary(v), got.VideoSummary)
	assert.Equal(t, "/api/v1/videos/"+testUUID+"/description", got.DescriptionPath)
	assert.Equal(t, []string{"https://videos.example/tracker/announce", "wss://videos.example:443/tracker/socket"}, got.TrackerURLs)
	assert.Equal(t, "Published", got.State.Label)
	assert.Equal(t, []string{"sunset", "timelapse"}, got.Tags)
	assert.Empty(t, got.StreamingPlaylists)
	require.NotNil(t, got.Account)
	assert.Equal(t, "alice", got.Account.Name)
	assert.False(t, got.Blacklisted)
	assert.Nil(t, got.BlacklistedReason)
}

func TestDetailFallsBackToPlaylistFiles(t *testing.T) {
	s := newTestSynth()
	v := federatedVideo()

	got, err := s.Detail(v, Moderation{})
	require.NoError(t, err)

	require.Len(t, got.StreamingPlaylists, 1)
	assert.Equal(t, got.StreamingPlaylists[0].Files, got.Files)
	require.Len(t, got.Files, 2)
	for _, f := range got.Files {
		assert.Regexp(t, `^https://peer\.example`, f.FileURL)
	}
	assert.Len(t, got.StreamingPlaylists[0].Redundancies, 1)
}

func TestDetailPrefersProgressiveOverPlaylist(t *testing.T) {
	s := newTestSynth()
	v := ownedVideo()
	v.StreamingPlaylists = []StreamingPlaylist{{ID: 1, Type: PlaylistTypeHLS, Files: []File{{ID: 20, Resolution: 240, Extname: ".mp4"}}}}

	got, err := s.Detail(v, Moderation{})
	require.NoError(t, err)

	require.Len(t, got.Files, 3)
	for _, f := range got.Files {
		assert.NotEqual(t, 240, f.Resolution.ID)
	}
	require.Len(t, got.StreamingPlaylists, 1)
	assert.Len(t, got.StreamingPlaylists[0].Files, 1)
}

func TestDetailSkipsLivePlaceholder(t *testing.T) {
	s := newTestSynth()
	v := ownedVideo()
	v.IsLive = true
	v.Files = []File{{ID: 1, Resolution: 720, IsLivePlaceholder: true}}

	got, err := s.Detail(v, Moderation{})
	require.NoError(t, err)
	assert.NotNil(t, got.Files)
	assert.Empty(t, got.Files)
}

func TestDetailModeration(t *testing.T) {
	got, err := newTestSynth().Detail(ownedVideo(), Moderation{Blacklisted: true, Reason: "copyright claim"})
	require.NoError(t, err)

	assert.True(t, got.Blacklisted)
	require.NotNil(t, got.BlacklistedReason)
	assert.Equal(t, "copyright claim", *got.BlacklistedReason)
}

func TestDetailWithoutChannel(t *testing.T) {
	v := ownedVideo()
	v.Channel = nil

	got, err := newTestSynth().Detail(v, Moderation{})
	require.NoError(t, err)
	assert.Nil(t, got.Channel)
}

func TestDetailInvalidOrigin(t *testing.T) {
	v := federatedVideo()
	v.RemoteHost = mo.None[string]()

	_, err := newTestSynth().Detail(v, Moderation{})
	assert.ErrorIs(t, err, ErrInvalidOriginInput)
}
