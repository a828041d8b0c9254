package model

// VideoCaption 字幕
type VideoCaption struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	VideoID  int64  `gorm:"not null;uniqueIndex:uq_captions_video_language;comment:所属视频" json:"video_id"`
	Language string `gorm:"size:10;not null;uniqueIndex:uq_captions_video_language;comment:语言代码" json:"language"`
	Filename string `gorm:"size:255;comment:字幕文件名" json:"filename"`
	FileURL  string `gorm:"size:2000;comment:远端字幕地址" json:"file_url"`
}

func (VideoCaption) TableName() string {
	return "video_captions"
}

// Tag 标签
type Tag struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"size:30;not null;uniqueIndex;comment:标签名" json:"name"`
}

func (Tag) TableName() string {
	return "tags"
}
