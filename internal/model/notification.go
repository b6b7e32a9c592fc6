package model

import "time"

const (
	NotificationFollow  = "follow"
	NotificationLike    = "like"
	NotificationComment = "comment"
)

// Notification 只由 fan-out 创建；recipient 永远不等于 sender
type Notification struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	RecipientID uint64    `gorm:"not null;index:idx_recipient_time,priority:1;index:idx_recipient_read,priority:1" json:"recipient_id"`
	SenderID    uint64    `gorm:"not null;index" json:"sender_id"`
	Type        string    `gorm:"size:10;not null" json:"type"`
	PostID      *uint64   `json:"post_id,omitempty"`
	LikeID      *uint64   `json:"like_id,omitempty"`
	CommentID   *uint64   `json:"comment_id,omitempty"`
	FollowID    *uint64   `json:"follow_id,omitempty"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Message     string    `gorm:"type:text" json:"message"`
	IsRead      bool      `gorm:"not null;default:false;index:idx_recipient_read,priority:2" json:"is_read"`
	CreatedAt   time.Time `gorm:"index:idx_recipient_time,priority:2,sort:desc" json:"created_at"`
}
