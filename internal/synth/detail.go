package synth

import (
	"github.com/samber/lo"

	"vida-fed/internal/api/dto"
)

// Detail 在 Summary 之上补充文件、播放列表、状态与审核信息
// 文件列表二选一：有整文件编码时用整文件，否则用第一个播放列表的文件
func (s *Synthesizer) Detail(v *Video, mod Moderation) (dto.VideoDetail, error) {
	origins, err := s.Origins(v)
	if err != nil {
		return dto.VideoDetail{}, err
	}

	detail := dto.VideoDetail{
		VideoSummary:    s.Summary(v),
		Support:         v.Support,
		DescriptionPath: s.cfg.Paths.APIVideos + v.UUID + "/description",
		Account:         accountSummary(v.Account),
		Channel:         channelSummary(v.Channel),
		Tags:            tagList(v.Tags),
		CommentsEnabled: v.CommentsEnabled,
		DownloadEnabled: v.DownloadEnabled,
		WaitTranscoding: v.WaitTranscoding,
		State:           StateLabel(v.State),
		TrackerURLs:     TrackerURLs(origins),
		Blacklisted:     mod.Blacklisted,
	}
	if mod.Blacklisted && mod.Reason != "" {
		reason := mod.Reason
		detail.BlacklistedReason = &reason
	}

	playlists := make([]PlaylistLinks, 0, len(v.StreamingPlaylists))
	for i := range v.StreamingPlaylists {
		playlists = append(playlists, s.BuildPlaylistLinks(v, &v.StreamingPlaylists[i], origins))
	}
	detail.StreamingPlaylists = lo.Map(playlists, func(p PlaylistLinks, _ int) dto.StreamingPlaylist {
		return p.Descriptor()
	})

	progressive := SortFiles(v.Files)
	switch {
	case len(progressive) > 0:
		owner := ProgressiveOwner{Video: v}
		detail.Files = lo.Map(progressive, func(f File, _ int) dto.VideoFile {
			return s.BuildFileLinks(owner, f, origins).Descriptor()
		})
	case len(playlists) > 0:
		detail.Files = lo.Map(playlists[0].Files, func(f FileLinks, _ int) dto.VideoFile {
			return f.Descriptor()
		})
	default:
		detail.Files = []dto.VideoFile{}
	}
	return detail, nil
}

func accountSummary(a *Account) *dto.AccountSummary {
	if a == nil {
		return nil
	}
	return &dto.AccountSummary{ID: a.ID, Name: a.Name, DisplayName: a.DisplayName, URL: a.ActorURL, Host: a.Host}
}

func channelSummary(c *Channel) *dto.ChannelSummary {
	if c == nil {
		return nil
	}
	return &dto.ChannelSummary{ID: c.ID, Name: c.Name, DisplayName: c.DisplayName, URL: c.ActorURL, Host: c.Host}
}

func tagList(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return append([]string(nil), tags...)
}
