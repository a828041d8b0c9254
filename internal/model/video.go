package model

import "time"

// Video 视频模型（本地与联邦视频共用一张表）
type Video struct {
	ID                    int64      `gorm:"primaryKey;autoIncrement;comment:视频标识" json:"id"`
	UUID                  string     `gorm:"size:36;not null;uniqueIndex;comment:视频UUID" json:"uuid"`
	URL                   string     `gorm:"size:2000;comment:ActivityPub对象地址" json:"url"`
	ChannelID             int64      `gorm:"not null;index:idx_videos_channel_id;comment:所属频道ID" json:"channel_id"`
	Name                  string     `gorm:"size:120;not null;comment:视频标题" json:"name"`
	Description           string     `gorm:"type:text;comment:视频描述" json:"description"`
	Support               string     `gorm:"size:1000;comment:支持信息" json:"support"`
	Category              int        `gorm:"default:0;comment:分类" json:"category"`
	Licence               int        `gorm:"default:0;comment:许可" json:"licence"`
	Language              string     `gorm:"size:10;comment:语言代码" json:"language"`
	Privacy               int        `gorm:"not null;default:1;index:idx_videos_privacy;comment:隐私级别" json:"privacy"`
	State                 int        `gorm:"not null;default:1;index:idx_videos_state;comment:状态" json:"state"`
	NSFW                  bool       `gorm:"not null;default:false;comment:敏感内容" json:"nsfw"`
	CommentsEnabled       bool       `gorm:"not null;default:true;comment:允许评论" json:"comments_enabled"`
	DownloadEnabled       bool       `gorm:"not null;default:true;comment:允许下载" json:"download_enabled"`
	WaitTranscoding       bool       `gorm:"not null;default:false;comment:转码完成后发布" json:"wait_transcoding"`
	Duration              int        `gorm:"default:0;comment:视频时长（秒）" json:"duration"`
	Views                 int64      `gorm:"default:0;comment:播放量" json:"views"`
	Likes                 int64      `gorm:"default:0;comment:点赞数" json:"likes"`
	Dislikes              int64      `gorm:"default:0;comment:点踩数" json:"dislikes"`
	IsLive                bool       `gorm:"not null;default:false;comment:是否直播" json:"is_live"`
	Remote                bool       `gorm:"not null;default:false;index:idx_videos_remote;comment:是否联邦视频" json:"remote"`
	RemoteHost            *string    `gorm:"size:255;comment:来源节点主机" json:"remote_host"`
	PublishedAt           time.Time  `gorm:"index:idx_videos_published_at;comment:发布时间" json:"published_at"`
	OriginallyPublishedAt *time.Time `gorm:"comment:原始发布时间" json:"originally_published_at"`
	CreatedAt             time.Time  `gorm:"autoCreateTime;index:idx_videos_created_at;comment:创建时间" json:"created_at"`
	UpdatedAt             time.Time  `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`

	// 关联关系
	Channel            *Channel            `gorm:"foreignKey:ChannelID" json:"channel,omitempty"`
	Files              []VideoFile         `gorm:"foreignKey:VideoID" json:"files,omitempty"`
	StreamingPlaylists []StreamingPlaylist `gorm:"foreignKey:VideoID" json:"streaming_playlists,omitempty"`
	Captions           []VideoCaption      `gorm:"foreignKey:VideoID" json:"captions,omitempty"`
	Tags               []Tag               `gorm:"many2many:video_tags" json:"tags,omitempty"`
	Live               *VideoLive          `gorm:"foreignKey:VideoID" json:"live,omitempty"`
	Blacklist          *VideoBlacklist     `gorm:"foreignKey:VideoID" json:"blacklist,omitempty"`
}

func (Video) TableName() string {
	return "videos"
}

// VideoLive 直播设置
type VideoLive struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	VideoID       int64     `gorm:"not null;uniqueIndex;comment:直播视频ID" json:"video_id"`
	SaveReplay    bool      `gorm:"not null;default:false;comment:保存回放" json:"save_replay"`
	PermanentLive bool      `gorm:"not null;default:false;comment:常驻直播" json:"permanent_live"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (VideoLive) TableName() string {
	return "video_lives"
}

// VideoBlacklist 视频屏蔽记录
type VideoBlacklist struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	VideoID   int64     `gorm:"not null;uniqueIndex;comment:被屏蔽视频ID" json:"video_id"`
	Reason    string    `gorm:"size:300;comment:屏蔽原因" json:"reason"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (VideoBlacklist) TableName() string {
	return "video_blacklists"
}

// All 需要自动迁移的全部模型
func All() []interface{} {
	return []interface{}{
		&Account{},
		&Channel{},
		&Video{},
		&Tag{},
		&VideoFile{},
		&StreamingPlaylist{},
		&VideoRedundancy{},
		&VideoCaption{},
		&VideoLive{},
		&VideoBlacklist{},
	}
}
