package synth

import (
	"time"

	"github.com/samber/mo"
)

// FileStorage 文件/播放列表的存储位置
type FileStorage int

const (
	StorageFileSystem FileStorage = iota
	StorageObjectStorage
)

// PlaylistType 播放列表类型，目前只有 HLS
type PlaylistType int

const PlaylistTypeHLS PlaylistType = 1

// Account 视频所属账号（Person actor）
type Account struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Host        string `json:"host"`
	ActorURL    string `json:"actorUrl"`
}

// Channel 视频所属频道（Group actor）
type Channel struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Host        string `json:"host"`
	ActorURL    string `json:"actorUrl"`
}

// LiveSettings 直播设置，仅直播视频存在
type LiveSettings struct {
	SaveReplay    bool `json:"saveReplay"`
	PermanentLive bool `json:"permanentLive"`
}

// File 某一分辨率的编码文件，属于视频本身（progressive）或某个播放列表（segmented）
type File struct {
	ID         int64       `json:"id"`
	Resolution int         `json:"resolution"`
	FPS        int         `json:"fps"`
	Size       int64       `json:"size"`
	Extname    string      `json:"extname"`
	InfoHash   string      `json:"infoHash"`
	Storage    FileStorage `json:"storage"`
	// MetadataURL 上游预先算好的元数据地址，优先于推导值
	MetadataURL string `json:"metadataUrl"`
	// IsLivePlaceholder 直播占位文件，永不对外分发
	IsLivePlaceholder bool `json:"isLivePlaceholder"`
}

// RedundancyMirror 冗余镜像节点
type RedundancyMirror struct {
	BaseURL string `json:"baseUrl"`
}

// StreamingPlaylist 分片播放列表
type StreamingPlaylist struct {
	ID           int64              `json:"id"`
	Type         PlaylistType       `json:"type"`
	Storage      FileStorage        `json:"storage"`
	Files        []File             `json:"files"`
	Redundancies []RedundancyMirror `json:"redundancies"`
}

// Caption 字幕；FileURL 非空时直接使用
type Caption struct {
	Language string `json:"language"`
	Filename string `json:"filename"`
	FileURL  string `json:"fileUrl"`
}

// Video 完整加载的只读视频快照，所有投影都基于它
// 关联数据由调用方预先挂载，这里不做任何懒加载
type Video struct {
	ID          int64  `json:"id"`
	UUID        string `json:"uuid"`
	URL         string `json:"url"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Support     string `json:"support"`

	Category int    `json:"category"`
	Licence  int    `json:"licence"`
	Language string `json:"language"`
	Privacy  int    `json:"privacy"`
	State    int    `json:"state"`

	NSFW            bool `json:"nsfw"`
	CommentsEnabled bool `json:"commentsEnabled"`
	DownloadEnabled bool `json:"downloadEnabled"`
	WaitTranscoding bool `json:"waitTranscoding"`

	Duration int   `json:"duration"`
	Views    int64 `json:"views"`
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`

	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
	PublishedAt           time.Time  `json:"publishedAt"`
	OriginallyPublishedAt *time.Time `json:"originallyPublishedAt"`

	IsLive bool                    `json:"isLive"`
	Live   mo.Option[LiveSettings] `json:"live"`

	// RemoteHost 仅联邦视频（非本地）存在
	IsLocal    bool              `json:"isLocal"`
	RemoteHost mo.Option[string] `json:"remoteHost"`

	Account *Account `json:"account"`
	Channel *Channel `json:"channel"`
	Tags    []string `json:"tags"`

	Files              []File              `json:"files"`
	StreamingPlaylists []StreamingPlaylist `json:"streamingPlaylists"`
	Captions           []Caption           `json:"captions"`
}

// Moderation 审核信息，由调用方提供给 Detail
type Moderation struct {
	Blacklisted bool
	Reason      string
}
