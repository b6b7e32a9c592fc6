package model

import "time"

// Follow 关注关系，(follower_id, following_id) 唯一
type Follow struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	FollowerID  uint64    `gorm:"not null;index:idx_follower;uniqueIndex:uk_follower_following" json:"follower_id"`
	FollowingID uint64    `gorm:"not null;index:idx_following;uniqueIndex:uk_follower_following" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName sets table name for Follow
func (Follow) TableName() string {
	return "follows"
}
