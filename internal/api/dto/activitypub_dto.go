package dto

// ActivityPub 对象：供其他节点发现并拉取本节点视频

// APIdentifier 分类/许可/语言在联邦对象中的表示
type APIdentifier struct {
	Identifier string `json:"identifier"`
	Name       string `json:"name"`
}

// APLink url[] 与 tag[] 中的 Link 条目；播放列表 Link 通过 Tag 嵌套其文件
type APLink struct {
	Type      string   `json:"type"`
	Name      string   `json:"name,omitempty"`
	Rel       []string `json:"rel,omitempty"`
	MediaType string   `json:"mediaType,omitempty"`
	Href      string   `json:"href"`
	Height    *int     `json:"height,omitempty"`
	Size      *int64   `json:"size,omitempty"`
	FPS       *int     `json:"fps,omitempty"`
	Tag       []APTag  `json:"tag,omitempty"`
}

// APTag Hashtag / Infohash / Link
type APTag struct {
	Type      string   `json:"type"`
	Name      string   `json:"name,omitempty"`
	Rel       []string `json:"rel,omitempty"`
	MediaType string   `json:"mediaType,omitempty"`
	Href      string   `json:"href,omitempty"`
	Height    *int     `json:"height,omitempty"`
	Size      *int64   `json:"size,omitempty"`
	FPS       *int     `json:"fps,omitempty"`
}

// APIcon 缩略图/预览图
type APIcon struct {
	Type      string `json:"type"`
	URL       string `json:"url"`
	MediaType string `json:"mediaType"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

// APSubtitle 字幕
type APSubtitle struct {
	Identifier string `json:"identifier"`
	Name       string `json:"name"`
	URL        string `json:"url"`
}

// APActor attributedTo 条目
type APActor struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// VideoObject 联邦 Video 对象
type VideoObject struct {
	Context               []any         `json:"@context,omitempty"`
	Type                  string        `json:"type"`
	ID                    string        `json:"id"`
	Name                  string        `json:"name"`
	Duration              string        `json:"duration"`
	UUID                  string        `json:"uuid"`
	Tag                   []APTag       `json:"tag"`
	Category              *APIdentifier `json:"category,omitempty"`
	Licence               *APIdentifier `json:"licence,omitempty"`
	Language              *APIdentifier `json:"language,omitempty"`
	Views                 int64         `json:"views"`
	Sensitive             bool          `json:"sensitive"`
	WaitTranscoding       bool          `json:"waitTranscoding"`
	State                 int           `json:"state"`
	CommentsEnabled       bool          `json:"commentsEnabled"`
	DownloadEnabled       bool          `json:"downloadEnabled"`
	Published             string        `json:"published"`
	OriginallyPublishedAt *string       `json:"originallyPublishedAt"`
	Updated               string        `json:"updated"`
	MediaType             string        `json:"mediaType"`
	Content               string        `json:"content"`
	Support               string        `json:"support,omitempty"`
	SubtitleLanguage      []APSubtitle  `json:"subtitleLanguage"`
	Icon                  []APIcon      `json:"icon"`
	URL                   []APLink      `json:"url"`
	Likes                 string        `json:"likes"`
	Dislikes              string        `json:"dislikes"`
	Shares                string        `json:"shares"`
	Comments              string        `json:"comments"`
	AttributedTo          []APActor     `json:"attributedTo"`
	IsLiveBroadcast       bool          `json:"isLiveBroadcast"`
	LiveSaveReplay        *bool         `json:"liveSaveReplay,omitempty"`
	PermanentLive         *bool         `json:"permanentLive,omitempty"`
}

// Activity 推送到 federation_outbox 的 Create/Update 活动
type Activity struct {
	Context []any       `json:"@context,omitempty"`
	Type    string      `json:"type"`
	ID      string      `json:"id"`
	Actor   string      `json:"actor"`
	To      []string    `json:"to"`
	Object  VideoObject `json:"object"`
}
