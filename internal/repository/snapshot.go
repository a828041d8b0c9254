package repository

import (
	"github.com/samber/lo"
	"github.com/samber/mo"

	"vida-fed/internal/model"
	"vida-fed/internal/synth"
)

// ToSnapshot 把已加载关联的模型转成只读快照；未加载的关联在快照中为空
func ToSnapshot(m *model.Video) *synth.Video {
	v := &synth.Video{
		ID:                    m.ID,
		UUID:                  m.UUID,
		URL:                   m.URL,
		Name:                  m.Name,
		Description:           m.Description,
		Support:               m.Support,
		Category:              m.Category,
		Licence:               m.Licence,
		Language:              m.Language,
		Privacy:               m.Privacy,
		State:                 m.State,
		NSFW:                  m.NSFW,
		CommentsEnabled:       m.CommentsEnabled,
		DownloadEnabled:       m.DownloadEnabled,
		WaitTranscoding:       m.WaitTranscoding,
		Duration:              m.Duration,
		Views:                 m.Views,
		Likes:                 m.Likes,
		Dislikes:              m.Dislikes,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
		PublishedAt:           m.PublishedAt,
		OriginallyPublishedAt: m.OriginallyPublishedAt,
		IsLive:                m.IsLive,
		IsLocal:               !m.Remote,
		RemoteHost:            remoteHost(m),
		Tags:                  lo.Map(m.Tags, func(t model.Tag, _ int) string { return t.Name }),
		Files:                 lo.Map(m.Files, toFile),
		StreamingPlaylists:    lo.Map(m.StreamingPlaylists, toPlaylist),
		Captions: lo.Map(m.Captions, func(c model.VideoCaption, _ int) synth.Caption {
			return synth.Caption{Language: c.Language, Filename: c.Filename, FileURL: c.FileURL}
		}),
	}
	if m.Live != nil {
		v.Live = mo.Some(synth.LiveSettings{SaveReplay: m.Live.SaveReplay, PermanentLive: m.Live.PermanentLive})
	}
	if c := m.Channel; c != nil {
		v.Channel = &synth.Channel{ID: c.ID, Name: c.Name, DisplayName: c.DisplayName, Host: c.Host, ActorURL: c.ActorURL}
		if a := c.Account; a != nil {
			v.Account = &synth.Account{ID: a.ID, Name: a.Name, DisplayName: a.DisplayName, Host: a.Host, ActorURL: a.ActorURL}
		}
	}
	return v
}

// ModerationOf 屏蔽信息
func ModerationOf(m *model.Video) synth.Moderation {
	if m.Blacklist == nil {
		return synth.Moderation{}
	}
	return synth.Moderation{Blacklisted: true, Reason: m.Blacklist.Reason}
}

// 联邦视频优先用记录的来源主机，缺失时退回频道所在节点
func remoteHost(m *model.Video) mo.Option[string] {
	if !m.Remote {
		return mo.None[string]()
	}
	if m.RemoteHost != nil && *m.RemoteHost != "" {
		return mo.Some(*m.RemoteHost)
	}
	if m.Channel != nil && m.Channel.Host != "" {
		return mo.Some(m.Channel.Host)
	}
	return mo.None[string]()
}

func toFile(f model.VideoFile, _ int) synth.File {
	return synth.File{
		ID:                f.ID,
		Resolution:        f.Resolution,
		FPS:               f.FPS,
		Size:              f.Size,
		Extname:           f.Extname,
		InfoHash:          f.InfoHash,
		Storage:           synth.FileStorage(f.Storage),
		MetadataURL:       f.MetadataURL,
		IsLivePlaceholder: f.IsLivePlaceholder,
	}
}

func toPlaylist(p model.StreamingPlaylist, _ int) synth.StreamingPlaylist {
	return synth.StreamingPlaylist{
		ID:      p.ID,
		Type:    synth.PlaylistType(p.Type),
		Storage: synth.FileStorage(p.Storage),
		Files:   lo.Map(p.Files, toFile),
		Redundancies: lo.Map(p.Redundancies, func(r model.VideoRedundancy, _ int) synth.RedundancyMirror {
			return synth.RedundancyMirror{BaseURL: r.BaseURL}
		}),
	}
}
