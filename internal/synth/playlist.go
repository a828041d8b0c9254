package synth

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"

	"github.com/samber/lo"

	"vida-fed/internal/api/dto"
)

// PlaylistLinks 单个播放列表的对外地址
type PlaylistLinks struct {
	ID                int64
	Type              PlaylistType
	PlaylistURL       string
	SegmentsSha256URL string
	Redundancies      []string
	Files             []FileLinks
	// InfoHashes 每个成员文件一条，供 tracker 识别 HLS 分片 swarm
	InfoHashes []string
}

func (l PlaylistLinks) Descriptor() dto.StreamingPlaylist {
	return dto.StreamingPlaylist{
		ID:                l.ID,
		Type:              int(l.Type),
		PlaylistURL:       l.PlaylistURL,
		SegmentsSha256URL: l.SegmentsSha256URL,
		Redundancies: lo.Map(l.Redundancies, func(u string, _ int) dto.Redundancy {
			return dto.Redundancy{BaseURL: u}
		}),
		Files: lo.Map(l.Files, func(f FileLinks, _ int) dto.VideoFile { return f.Descriptor() }),
	}
}

// BuildPlaylistLinks 计算 master.m3u8 与分片哈希地址，汇总成员文件与冗余镜像
// 没有成员文件的播放列表（转码中）也是合法输入
func (s *Synthesizer) BuildPlaylistLinks(v *Video, playlist *StreamingPlaylist, origins Origins) PlaylistLinks {
	base := s.playlistBase(v, playlist, origins)
	links := PlaylistLinks{
		ID:                playlist.ID,
		Type:              playlist.Type,
		PlaylistURL:       base + "master.m3u8",
		SegmentsSha256URL: base + "segments-sha256.json",
		Redundancies: lo.Map(playlist.Redundancies, func(m RedundancyMirror, _ int) string {
			return m.BaseURL
		}),
	}

	owner := SegmentedOwner{Video: v, Playlist: playlist}
	files := SortFiles(playlist.Files)
	links.Files = make([]FileLinks, 0, len(files))
	for _, f := range files {
		links.Files = append(links.Files, s.BuildFileLinks(owner, f, origins))
	}
	links.InfoHashes = PlaylistInfoHashes(links.PlaylistURL, len(files))
	return links
}

func (s *Synthesizer) playlistBase(v *Video, playlist *StreamingPlaylist, origins Origins) string {
	if v.IsLocal && playlist.Storage == StorageObjectStorage && s.cfg.ObjectStorage.StreamingPlaylistsBaseURL != "" {
		return s.cfg.ObjectStorage.StreamingPlaylistsBaseURL + "/" + v.UUID + "/"
	}
	return origins.HTTP + s.cfg.Paths.StreamingPlaylists + v.UUID + "/"
}

// PlaylistInfoHashes 按文件序号为分片 swarm 生成稳定的 info-hash
func PlaylistInfoHashes(playlistURL string, count int) []string {
	hashes := make([]string, 0, count)
	for i := 0; i < count; i++ {
		sum := sha1.Sum([]byte(fmt.Sprintf("%d%s+V%d", 2, playlistURL, i)))
		hashes = append(hashes, hex.EncodeToString(sum[:]))
	}
	return hashes
}
