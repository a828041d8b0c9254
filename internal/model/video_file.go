package model

import "time"

// VideoFile 编码文件，VideoID 与 StreamingPlaylistID 二者只有一个非空
type VideoFile struct {
	ID                  int64     `gorm:"primaryKey;autoIncrement;comment:文件标识" json:"id"`
	VideoID             *int64    `gorm:"index:idx_video_files_video_id;comment:整文件所属视频" json:"video_id"`
	StreamingPlaylistID *int64    `gorm:"index:idx_video_files_playlist_id;comment:分片所属播放列表" json:"streaming_playlist_id"`
	Resolution          int       `gorm:"not null;comment:分辨率（高度）" json:"resolution"`
	FPS                 int       `gorm:"not null;default:0;comment:帧率" json:"fps"`
	Size                int64     `gorm:"not null;default:0;comment:文件大小（字节）" json:"size"`
	Extname             string    `gorm:"size:10;not null;comment:扩展名" json:"extname"`
	InfoHash            string    `gorm:"size:40;comment:种子info-hash" json:"info_hash"`
	Storage             int       `gorm:"not null;default:0;comment:存储位置 0本地 1对象存储" json:"storage"`
	MetadataURL         string    `gorm:"size:2000;comment:元数据地址" json:"metadata_url"`
	IsLivePlaceholder   bool      `gorm:"not null;default:false;comment:直播占位文件" json:"is_live_placeholder"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (VideoFile) TableName() string {
	return "video_files"
}

// StreamingPlaylist 分片播放列表
type StreamingPlaylist struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:播放列表标识" json:"id"`
	VideoID   int64     `gorm:"not null;index:idx_streaming_playlists_video_id;comment:所属视频" json:"video_id"`
	Type      int       `gorm:"not null;default:1;comment:类型 1=HLS" json:"type"`
	Storage   int       `gorm:"not null;default:0;comment:存储位置 0本地 1对象存储" json:"storage"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Files        []VideoFile       `gorm:"foreignKey:StreamingPlaylistID" json:"files,omitempty"`
	Redundancies []VideoRedundancy `gorm:"foreignKey:StreamingPlaylistID" json:"redundancies,omitempty"`
}

func (StreamingPlaylist) TableName() string {
	return "video_streaming_playlists"
}

// VideoRedundancy 冗余镜像
type VideoRedundancy struct {
	ID                  int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	StreamingPlaylistID int64     `gorm:"not null;index:idx_redundancies_playlist_id;comment:被镜像的播放列表" json:"streaming_playlist_id"`
	BaseURL             string    `gorm:"size:2000;not null;comment:镜像基础地址" json:"base_url"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (VideoRedundancy) TableName() string {
	return "video_redundancies"
}
