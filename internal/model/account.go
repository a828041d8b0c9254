package model

import "time"

// Account 账号（ActivityPub Person）
type Account struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;comment:账号标识" json:"id"`
	Name        string    `gorm:"size:255;not null;uniqueIndex:uq_accounts_name_host;comment:账号名" json:"name"`
	Host        string    `gorm:"size:255;uniqueIndex:uq_accounts_name_host;comment:所在节点，本地为空" json:"host"`
	DisplayName string    `gorm:"size:255;comment:显示名" json:"display_name"`
	ActorURL    string    `gorm:"size:2000;comment:actor地址" json:"actor_url"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Channels []Channel `gorm:"foreignKey:AccountID" json:"channels,omitempty"`
}

func (Account) TableName() string {
	return "accounts"
}

// Channel 频道（ActivityPub Group）
type Channel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;comment:频道标识" json:"id"`
	AccountID   int64     `gorm:"not null;index:idx_channels_account_id;comment:所属账号ID" json:"account_id"`
	Name        string    `gorm:"size:255;not null;uniqueIndex:uq_channels_name_host;comment:频道名" json:"name"`
	Host        string    `gorm:"size:255;uniqueIndex:uq_channels_name_host;comment:所在节点，本地为空" json:"host"`
	DisplayName string    `gorm:"size:255;comment:显示名" json:"display_name"`
	ActorURL    string    `gorm:"size:2000;comment:actor地址" json:"actor_url"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Account *Account `gorm:"foreignKey:AccountID" json:"account,omitempty"`
}

func (Channel) TableName() string {
	return "video_channels"
}
