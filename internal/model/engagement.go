package model

import "time"

// Like (user_id, post_id) 唯一；不允许给自己的帖子点赞
type Like struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UserID    uint64    `gorm:"not null;index;uniqueIndex:uk_user_post" json:"user_id"`
	PostID    uint64    `gorm:"not null;index;uniqueIndex:uk_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Like) TableName() string {
	return "likes"
}

// Comment 软删除：is_active=false
type Comment struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`
	PostID    uint64    `gorm:"not null;index:idx_post_time,priority:1" json:"post_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"index:idx_post_time,priority:2" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
