package synth

import (
	"strconv"
	"time"

	"github.com/samber/lo"

	"vida-fed/internal/api/dto"
)

const (
	mediaTypeHTML    = "text/html"
	mediaTypeJSON    = "application/json"
	mediaTypeTorrent = "application/x-bittorrent"
	mediaTypeMagnet  = "application/x-bittorrent;x-scheme-handler/magnet"
	mediaTypeHLS     = "application/x-mpegURL"
	mediaTypeJPEG    = "image/jpeg"
	mediaTypeContent = "text/markdown"

	isoMillis = "2006-01-02T15:04:05.000Z07:00"
)

var videoMimeTypes = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/mp4",
	".webm": "video/webm",
	".ogv":  "video/ogg",
	".mkv":  "video/x-matroska",
	".mov":  "video/quicktime",
	".m4a":  "audio/mp4",
	".mp3":  "audio/mpeg",
	".ogg":  "audio/ogg",
	".flac": "audio/flac",
}

// ActivityStreamsContext 联邦对象顶层 @context
func ActivityStreamsContext() []any {
	return []any{
		"https://www.w3.org/ns/activitystreams",
		"https://w3id.org/security/v1",
	}
}

// Federation 生成可供其他节点拉取的 Video 对象，必须能归属到账号与频道
func (s *Synthesizer) Federation(v *Video) (dto.VideoObject, error) {
	if v.Account == nil || v.Channel == nil {
		return dto.VideoObject{}, ErrIncompleteVideoForFederation
	}
	origins, err := s.Origins(v)
	if err != nil {
		return dto.VideoObject{}, err
	}

	id := v.URL
	if id == "" {
		id = origins.HTTP + s.cfg.Paths.Watch + v.UUID
	}

	obj := dto.VideoObject{
		Type:             "Video",
		ID:               id,
		Name:             v.Name,
		Duration:         "PT" + strconv.Itoa(v.Duration) + "S",
		UUID:             v.UUID,
		Tag:              lo.Map(v.Tags, func(t string, _ int) dto.APTag { return dto.APTag{Type: "Hashtag", Name: t} }),
		Views:            v.Views,
		Sensitive:        v.NSFW,
		WaitTranscoding:  v.WaitTranscoding,
		State:            v.State,
		CommentsEnabled:  v.CommentsEnabled,
		DownloadEnabled:  v.DownloadEnabled,
		Published:        formatTime(v.PublishedAt),
		Updated:          formatTime(v.UpdatedAt),
		MediaType:        mediaTypeContent,
		Content:          v.Description,
		Support:          v.Support,
		SubtitleLanguage: s.subtitles(v, origins),
		Icon:             s.icons(v, origins),
		URL:              s.federationLinks(v, origins),
		Likes:            id + "/likes",
		Dislikes:         id + "/dislikes",
		Shares:           id + "/shares",
		Comments:         id + "/comments",
		AttributedTo:     s.attribution(v, origins),
		IsLiveBroadcast:  v.IsLive,
	}
	if v.OriginallyPublishedAt != nil {
		at := formatTime(*v.OriginallyPublishedAt)
		obj.OriginallyPublishedAt = &at
	}
	if v.Category != 0 {
		obj.Category = &dto.APIdentifier{Identifier: strconv.Itoa(v.Category), Name: CategoryLabel(v.Category).Label}
	}
	if v.Licence != 0 {
		obj.Licence = &dto.APIdentifier{Identifier: strconv.Itoa(v.Licence), Name: LicenceLabel(v.Licence).Label}
	}
	if v.Language != "" {
		obj.Language = &dto.APIdentifier{Identifier: v.Language, Name: languageName(v.Language)}
	}
	if v.IsLive {
		live := v.Live.OrEmpty()
		obj.LiveSaveReplay = lo.ToPtr(live.SaveReplay)
		obj.PermanentLive = lo.ToPtr(live.PermanentLive)
	}
	return obj, nil
}

// url[]：先是观看页，再是整文件的四类链接，最后每个播放列表一条（成员文件嵌套在 tag 中）
func (s *Synthesizer) federationLinks(v *Video, origins Origins) []dto.APLink {
	links := []dto.APLink{{
		Type:      "Link",
		MediaType: mediaTypeHTML,
		Href:      origins.HTTP + s.cfg.Paths.Watch + v.UUID,
	}}

	owner := ProgressiveOwner{Video: v}
	for _, f := range SortFiles(v.Files) {
		links = append(links, fileLinkEntries(s.BuildFileLinks(owner, f, origins))...)
	}

	for i := range v.StreamingPlaylists {
		p := s.BuildPlaylistLinks(v, &v.StreamingPlaylists[i], origins)
		tags := lo.Map(p.InfoHashes, func(h string, _ int) dto.APTag {
			return dto.APTag{Type: "Infohash", Name: h}
		})
		tags = append(tags, dto.APTag{Type: "Link", Name: "sha256", MediaType: mediaTypeJSON, Href: p.SegmentsSha256URL})
		for _, f := range p.Files {
			for _, l := range fileLinkEntries(f) {
				tags = append(tags, linkTag(l))
			}
		}
		links = append(links, dto.APLink{
			Type:      "Link",
			MediaType: mediaTypeHLS,
			Href:      p.PlaylistURL,
			Tag:       tags,
		})
	}
	return links
}

// 单个文件：直链、元数据、种子、磁力，按此顺序；无法得到的链接省略
func fileLinkEntries(f FileLinks) []dto.APLink {
	mime := mimeType(f.Extname)
	height := f.Resolution

	out := []dto.APLink{{
		Type:      "Link",
		MediaType: mime,
		Href:      f.FileURL,
		Height:    lo.ToPtr(height),
		Size:      lo.ToPtr(f.Size),
		FPS:       lo.ToPtr(f.FPS),
	}}
	if f.MetadataURL != "" {
		out = append(out, dto.APLink{
			Type:      "Link",
			Rel:       []string{"metadata", mime},
			MediaType: mediaTypeJSON,
			Href:      f.MetadataURL,
			Height:    lo.ToPtr(height),
			FPS:       lo.ToPtr(f.FPS),
		})
	}
	out = append(out, dto.APLink{
		Type:      "Link",
		MediaType: mediaTypeTorrent,
		Href:      f.TorrentURL,
		Height:    lo.ToPtr(height),
	})
	if f.MagnetURI != "" {
		out = append(out, dto.APLink{
			Type:      "Link",
			MediaType: mediaTypeMagnet,
			Href:      f.MagnetURI,
			Height:    lo.ToPtr(height),
		})
	}
	return out
}

func linkTag(l dto.APLink) dto.APTag {
	return dto.APTag{
		Type:      l.Type,
		Name:      l.Name,
		Rel:       l.Rel,
		MediaType: l.MediaType,
		Href:      l.Href,
		Height:    l.Height,
		Size:      l.Size,
		FPS:       l.FPS,
	}
}

func (s *Synthesizer) subtitles(v *Video, origins Origins) []dto.APSubtitle {
	return lo.Map(v.Captions, func(c Caption, _ int) dto.APSubtitle {
		u := c.FileURL
		if u == "" {
			filename := c.Filename
			if filename == "" {
				filename = v.UUID + "-" + c.Language + ".vtt"
			}
			u = origins.HTTP + s.cfg.Paths.Captions + filename
		}
		return dto.APSubtitle{Identifier: c.Language, Name: languageName(c.Language), URL: u}
	})
}

func (s *Synthesizer) icons(v *Video, origins Origins) []dto.APIcon {
	return []dto.APIcon{
		{
			Type:      "Image",
			URL:       origins.HTTP + s.ThumbnailPath(v),
			MediaType: mediaTypeJPEG,
			Width:     s.cfg.Thumbnail.Width,
			Height:    s.cfg.Thumbnail.Height,
		},
		{
			Type:      "Image",
			URL:       origins.HTTP + s.PreviewPath(v),
			MediaType: mediaTypeJPEG,
			Width:     s.cfg.Preview.Width,
			Height:    s.cfg.Preview.Height,
		},
	}
}

// attributedTo 固定两项：[0] Person 账号，[1] Group 频道
func (s *Synthesizer) attribution(v *Video, origins Origins) []dto.APActor {
	account := v.Account.ActorURL
	if account == "" {
		account = origins.HTTP + s.cfg.Paths.Accounts + v.Account.Name
	}
	channel := v.Channel.ActorURL
	if channel == "" {
		channel = origins.HTTP + s.cfg.Paths.VideoChannels + v.Channel.Name
	}
	return []dto.APActor{
		{Type: "Person", ID: account},
		{Type: "Group", ID: channel},
	}
}

func mimeType(ext string) string {
	if m, ok := videoMimeTypes[ext]; ok {
		return m
	}
	return "application/octet-stream"
}

func formatTime(t time.Time) string {
	return t.UTC().Format(isoMillis)
}
