package synth

import (
	"cmp"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"vida-fed/internal/api/dto"
)

const (
	trackerAnnouncePath = "/tracker/announce"
	trackerSocketPath   = "/tracker/socket"
)

// FileOwner 文件归属：视频本身或某个分片播放列表
type FileOwner interface {
	video() *Video
}

// ProgressiveOwner 整文件编码，文件直接挂在视频上
type ProgressiveOwner struct {
	Video *Video
}

// SegmentedOwner 分片编码，文件挂在播放列表上
type SegmentedOwner struct {
	Video    *Video
	Playlist *StreamingPlaylist
}

func (o ProgressiveOwner) video() *Video { return o.Video }
func (o SegmentedOwner) video() *Video   { return o.Video }

// FileLinks 单个文件的全部对外地址
type FileLinks struct {
	Resolution         int
	FPS                int
	Size               int64
	Extname            string
	FileURL            string
	FileDownloadURL    string
	TorrentURL         string
	TorrentDownloadURL string
	MetadataURL        string
	MagnetURI          string
	InfoHash           string
	FileID             int64
}

// Descriptor 转成 API 输出
func (l FileLinks) Descriptor() dto.VideoFile {
	return dto.VideoFile{
		ID:                 l.FileID,
		Resolution:         ResolutionLabel(l.Resolution),
		MagnetURI:          l.MagnetURI,
		Size:               l.Size,
		FPS:                l.FPS,
		TorrentURL:         l.TorrentURL,
		TorrentDownloadURL: l.TorrentDownloadURL,
		FileURL:            l.FileURL,
		FileDownloadURL:    l.FileDownloadURL,
		MetadataURL:        l.MetadataURL,
	}
}

// SortFiles 去掉直播占位文件，按分辨率降序稳定排序；不修改入参
func SortFiles(files []File) []File {
	out := lo.Filter(files, func(f File, _ int) bool { return !f.IsLivePlaceholder })
	slices.SortStableFunc(out, func(a, b File) int {
		return cmp.Compare(b.Resolution, a.Resolution)
	})
	return out
}

// BuildFileLinks 计算单个文件的下载、种子、元数据与磁力地址
// 调用方负责事先过滤直播占位文件
func (s *Synthesizer) BuildFileLinks(owner FileOwner, file File, origins Origins) FileLinks {
	v := owner.video()
	res := strconv.Itoa(file.Resolution)

	var filename, torrentName, fileURL, downloadURL string
	switch o := owner.(type) {
	case SegmentedOwner:
		filename = v.UUID + "-" + res + "-fragmented" + file.Extname
		torrentName = v.UUID + "-" + res + "-hls.torrent"
		storage := file.Storage
		if o.Playlist != nil {
			storage = o.Playlist.Storage
		}
		fileURL = s.mediaURL(v, storage, origins,
			s.cfg.ObjectStorage.StreamingPlaylistsBaseURL, v.UUID+"/"+filename,
			s.cfg.Paths.StreamingPlaylists+v.UUID+"/"+filename)
		downloadURL = origins.HTTP + s.cfg.Paths.DownloadHLSVideos + filename
	default:
		filename = v.UUID + "-" + res + file.Extname
		torrentName = v.UUID + "-" + res + ".torrent"
		fileURL = s.mediaURL(v, file.Storage, origins,
			s.cfg.ObjectStorage.WebVideosBaseURL, filename,
			s.cfg.Paths.WebVideos+filename)
		downloadURL = origins.HTTP + s.cfg.Paths.DownloadVideos + filename
	}

	links := FileLinks{
		Resolution:         file.Resolution,
		FPS:                file.FPS,
		Size:               file.Size,
		Extname:            file.Extname,
		FileURL:            fileURL,
		FileDownloadURL:    downloadURL,
		TorrentURL:         origins.HTTP + s.cfg.Paths.Torrents + torrentName,
		TorrentDownloadURL: origins.HTTP + s.cfg.Paths.DownloadTorrents + torrentName,
		InfoHash:           file.InfoHash,
		FileID:             file.ID,
	}
	if meta, err := s.metadataURL(v, file, origins); err == nil {
		links.MetadataURL = meta
	}
	if file.InfoHash != "" {
		links.MagnetURI = magnetURI(links, v.Name, origins)
	}
	return links
}

// 本地且位于对象存储的文件走对象存储公开地址，其余走视频来源地址
func (s *Synthesizer) mediaURL(v *Video, storage FileStorage, origins Origins, objectBase, objectKey, path string) string {
	if v.IsLocal && storage == StorageObjectStorage && objectBase != "" {
		return objectBase + "/" + objectKey
	}
	return origins.HTTP + path
}

func (s *Synthesizer) metadataURL(v *Video, file File, origins Origins) (string, error) {
	if file.MetadataURL != "" {
		return file.MetadataURL, nil
	}
	if file.ID == 0 {
		return "", ErrMissingCodecMetadata
	}
	return origins.HTTP + s.cfg.Paths.APIVideos + v.UUID + "/metadata/" + strconv.FormatInt(file.ID, 10), nil
}

func magnetURI(links FileLinks, name string, origins Origins) string {
	params := []string{
		"xs=" + magnetEscape(links.TorrentURL),
		"xt=urn:btih:" + links.InfoHash,
		"xl=" + strconv.FormatInt(links.Size, 10),
		"dn=" + magnetEscape(name),
		"tr=" + magnetEscape(origins.Peer+trackerSocketPath),
		"tr=" + magnetEscape(origins.HTTP+trackerAnnouncePath),
		"ws=" + magnetEscape(links.FileURL),
	}
	return "magnet:?" + strings.Join(params, "&")
}

func magnetEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// TrackerURLs Detail 输出的 tracker 列表
func TrackerURLs(origins Origins) []string {
	return []string{origins.HTTP + trackerAnnouncePath, origins.Peer + trackerSocketPath}
}
