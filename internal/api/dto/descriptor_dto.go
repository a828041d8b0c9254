package dto

import "time"

// Constant 带标签的整型常量（分类、许可、隐私、状态）
type Constant struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

// LanguageConstant 语言常量，ID 为 ISO-639 代码
type LanguageConstant struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// VideoSummary 列表用视频摘要（不含文件信息）
type VideoSummary struct {
	ID                    int64            `json:"id"`
	UUID                  string           `json:"uuid"`
	ShortUUID             string           `json:"shortUUID"`
	Name                  string           `json:"name"`
	Category              Constant         `json:"category"`
	Licence               Constant         `json:"licence"`
	Language              LanguageConstant `json:"language"`
	Privacy               Constant         `json:"privacy"`
	NSFW                  bool             `json:"nsfw"`
	Description           string           `json:"description"`
	IsLocal               bool             `json:"isLocal"`
	IsLive                bool             `json:"isLive"`
	Duration              int              `json:"duration"`
	Views                 int64            `json:"views"`
	Likes                 int64            `json:"likes"`
	Dislikes              int64            `json:"dislikes"`
	ThumbnailPath         string           `json:"thumbnailPath"`
	PreviewPath           string           `json:"previewPath"`
	EmbedPath             string           `json:"embedPath"`
	CreatedAt             time.Time        `json:"createdAt"`
	UpdatedAt             time.Time        `json:"updatedAt"`
	PublishedAt           time.Time        `json:"publishedAt"`
	OriginallyPublishedAt *time.Time       `json:"originallyPublishedAt"`
}

// AccountSummary 视频所属账号
type AccountSummary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	URL         string `json:"url"`
	Host        string `json:"host"`
}

// ChannelSummary 视频所属频道
type ChannelSummary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	URL         string `json:"url"`
	Host        string `json:"host"`
}

// VideoFile 单个编码文件的对外描述
type VideoFile struct {
	ID                 int64    `json:"id,omitempty"`
	Resolution         Constant `json:"resolution"`
	MagnetURI          string   `json:"magnetUri,omitempty"`
	Size               int64    `json:"size"`
	FPS                int      `json:"fps"`
	TorrentURL         string   `json:"torrentUrl"`
	TorrentDownloadURL string   `json:"torrentDownloadUrl"`
	FileURL            string   `json:"fileUrl"`
	FileDownloadURL    string   `json:"fileDownloadUrl"`
	MetadataURL        string   `json:"metadataUrl,omitempty"`
}

// Redundancy 冗余镜像节点
type Redundancy struct {
	BaseURL string `json:"baseUrl"`
}

// StreamingPlaylist 分片播放列表描述
type StreamingPlaylist struct {
	ID                int64        `json:"id"`
	Type              int          `json:"type"`
	PlaylistURL       string       `json:"playlistUrl"`
	SegmentsSha256URL string       `json:"segmentsSha256Url"`
	Redundancies      []Redundancy `json:"redundancies"`
	Files             []VideoFile  `json:"files"`
}

// VideoDetail 视频详情 = 摘要 + 文件、播放列表、状态等
type VideoDetail struct {
	VideoSummary

	Support            string              `json:"support"`
	DescriptionPath    string              `json:"descriptionPath"`
	Channel            *ChannelSummary     `json:"channel,omitempty"`
	Account            *AccountSummary     `json:"account,omitempty"`
	Tags               []string            `json:"tags"`
	CommentsEnabled    bool                `json:"commentsEnabled"`
	DownloadEnabled    bool                `json:"downloadEnabled"`
	WaitTranscoding    bool                `json:"waitTranscoding"`
	State              Constant            `json:"state"`
	TrackerURLs        []string            `json:"trackerUrls"`
	Files              []VideoFile         `json:"files"`
	StreamingPlaylists []StreamingPlaylist `json:"streamingPlaylists"`
	Blacklisted        bool                `json:"blacklisted"`
	BlacklistedReason  *string             `json:"blacklistedReason"`
}

// VideoListData 视频摘要分页数据
type VideoListData struct {
	Videos     []VideoSummary `json:"videos"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int64          `json:"total_pages"`
}

// VideoListRequest 视频列表查询参数
type VideoListRequest struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1"`
	Search    string `form:"search" binding:"omitempty,max=100"`
	LocalOnly bool   `form:"local_only"`
	Category  int    `form:"category" binding:"omitempty,min=0"`
}
