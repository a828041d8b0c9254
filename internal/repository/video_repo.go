package repository

import (
	"context"

	"vida-fed/internal/model"

	"gorm.io/gorm"
)

// 公开视频的隐私级别
const privacyPublic = 1

type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// ListFilter 列表筛选条件
type ListFilter struct {
	Search    string
	LocalOnly bool
	Category  int
}

func byID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

// 一次性加载生成详情与联邦对象所需的全部关联，文件按插入顺序
func (r *VideoRepository) withAssociations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Channel.Account").
		Preload("Files", byID).
		Preload("StreamingPlaylists", byID).
		Preload("StreamingPlaylists.Files", byID).
		Preload("StreamingPlaylists.Redundancies", byID).
		Preload("Captions", byID).
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.id ASC") }).
		Preload("Live").
		Preload("Blacklist")
}

// GetFullByID 根据 ID 获取视频及全部关联
func (r *VideoRepository) GetFullByID(ctx context.Context, id int64) (*model.Video, error) {
	var video model.Video
	if err := r.withAssociations(ctx).Where("videos.id = ?", id).First(&video).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

// GetFullByUUID 根据 UUID 获取视频及全部关联
func (r *VideoRepository) GetFullByUUID(ctx context.Context, uuid string) (*model.Video, error) {
	var video model.Video
	if err := r.withAssociations(ctx).Where("videos.uuid = ?", uuid).First(&video).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

// ListVideos 公开且未被屏蔽的视频列表（分页，按发布时间倒序）
// 摘要不需要文件信息，只预加载频道与账号
func (r *VideoRepository) ListVideos(ctx context.Context, skip, limit int, filter ListFilter) ([]model.Video, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Video{}).
		Where("videos.privacy = ?", privacyPublic).
		Where("NOT EXISTS (SELECT 1 FROM video_blacklists b WHERE b.video_id = videos.id)")

	if filter.LocalOnly {
		query = query.Where("videos.remote = ?", false)
	}
	if filter.Category > 0 {
		query = query.Where("videos.category = ?", filter.Category)
	}
	if filter.Search != "" {
		query = query.Where("videos.name ILIKE ? OR videos.description ILIKE ?", "%"+filter.Search+"%", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var videos []model.Video
	err := query.Preload("Channel.Account").
		Order("videos.published_at DESC").Order("videos.id DESC").
		Offset(skip).Limit(limit).
		Find(&videos).Error
	if err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

// ListLocalIDs 本地视频 ID（批量重新联邦用），afterID 之后按 ID 升序
func (r *VideoRepository) ListLocalIDs(ctx context.Context, afterID int64, limit int) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&model.Video{}).
		Where("remote = ? AND id > ?", false, afterID).
		Order("id ASC").Limit(limit).
		Pluck("id", &ids).Error
	return ids, err
}

// ListByIDs 按 ID 批量加载摘要所需字段，不保证顺序
func (r *VideoRepository) ListByIDs(ctx context.Context, ids []int64) ([]model.Video, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var videos []model.Video
	err := r.db.WithContext(ctx).
		Preload("Channel.Account").
		Preload("Tags").
		Preload("Blacklist").
		Where("id IN ?", ids).
		Find(&videos).Error
	return videos, err
}
