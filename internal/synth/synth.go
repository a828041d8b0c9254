package synth

import "strings"

// Paths 对外暴露的固定 URL 前缀
type Paths struct {
	WebVideos          string
	StreamingPlaylists string
	Torrents           string
	DownloadVideos     string
	DownloadHLSVideos  string
	DownloadTorrents   string
	Thumbnails         string
	Previews           string
	Captions           string
	Embed              string
	Watch              string
	APIVideos          string
	Accounts           string
	VideoChannels      string
}

func DefaultPaths() Paths {
	return Paths{
		WebVideos:          "/static/webseed/",
		StreamingPlaylists: "/static/streaming-playlists/hls/",
		Torrents:           "/static/torrents/",
		DownloadVideos:     "/download/videos/",
		DownloadHLSVideos:  "/download/streaming-playlists/hls/videos/",
		DownloadTorrents:   "/download/torrents/",
		Thumbnails:         "/static/thumbnails/",
		Previews:           "/static/previews/",
		Captions:           "/lazy-static/video-captions/",
		Embed:              "/videos/embed/",
		Watch:              "/videos/watch/",
		APIVideos:          "/api/v1/videos/",
		Accounts:           "/accounts/",
		VideoChannels:      "/video-channels/",
	}
}

// ObjectStorage 对象存储公开访问地址，为空表示未启用
type ObjectStorage struct {
	WebVideosBaseURL          string
	StreamingPlaylistsBaseURL string
}

type IconSize struct {
	Width  int
	Height int
}

// Config 投影所需的全部进程配置
type Config struct {
	Origin        OriginConfig
	ObjectStorage ObjectStorage
	Paths         Paths
	Thumbnail     IconSize
	Preview       IconSize
	// 摘要描述的最大字符数
	DescriptionLength int
}

const defaultDescriptionLength = 250

// Synthesizer 不可变，可被任意 goroutine 并发使用；配置变更时整体替换
type Synthesizer struct {
	cfg Config
}

func New(cfg Config) *Synthesizer {
	def := DefaultPaths()
	fill := func(v *string, d string) {
		if *v == "" {
			*v = d
		}
	}
	fill(&cfg.Paths.WebVideos, def.WebVideos)
	fill(&cfg.Paths.StreamingPlaylists, def.StreamingPlaylists)
	fill(&cfg.Paths.Torrents, def.Torrents)
	fill(&cfg.Paths.DownloadVideos, def.DownloadVideos)
	fill(&cfg.Paths.DownloadHLSVideos, def.DownloadHLSVideos)
	fill(&cfg.Paths.DownloadTorrents, def.DownloadTorrents)
	fill(&cfg.Paths.Thumbnails, def.Thumbnails)
	fill(&cfg.Paths.Previews, def.Previews)
	fill(&cfg.Paths.Captions, def.Captions)
	fill(&cfg.Paths.Embed, def.Embed)
	fill(&cfg.Paths.Watch, def.Watch)
	fill(&cfg.Paths.APIVideos, def.APIVideos)
	fill(&cfg.Paths.Accounts, def.Accounts)
	fill(&cfg.Paths.VideoChannels, def.VideoChannels)

	fill(&cfg.Origin.RemoteHTTPScheme, "https")
	fill(&cfg.Origin.RemoteWSScheme, "wss")
	fill(&cfg.Origin.Self.WSScheme, "ws")

	cfg.ObjectStorage.WebVideosBaseURL = strings.TrimSuffix(cfg.ObjectStorage.WebVideosBaseURL, "/")
	cfg.ObjectStorage.StreamingPlaylistsBaseURL = strings.TrimSuffix(cfg.ObjectStorage.StreamingPlaylistsBaseURL, "/")

	if cfg.Thumbnail == (IconSize{}) {
		cfg.Thumbnail = IconSize{Width: 280, Height: 157}
	}
	if cfg.Preview == (IconSize{}) {
		cfg.Preview = IconSize{Width: 850, Height: 480}
	}
	if cfg.DescriptionLength <= 3 {
		cfg.DescriptionLength = defaultDescriptionLength
	}
	return &Synthesizer{cfg: cfg}
}

// Config 返回副本
func (s *Synthesizer) Config() Config {
	return s.cfg
}

// Origins 按视频归属解析对外地址
func (s *Synthesizer) Origins(v *Video) (Origins, error) {
	return ResolveOrigins(v.IsLocal, v.RemoteHost, s.cfg.Origin)
}
