package model

import "time"

// Categories 帖子分类枚举
var Categories = []string{
	"general", "technology", "lifestyle", "travel", "food",
	"sports", "entertainment", "business", "education", "other",
}

func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Post 点赞数/评论数不落库，读取时实时聚合
type Post struct {
	ID        uint64    `gorm:"primaryKey;index:idx_author_time,priority:3,sort:desc" json:"id"`
	AuthorID  uint64    `gorm:"not null;index:idx_author_time,priority:1" json:"author_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	ImageURL  string    `gorm:"size:255" json:"image_url"`
	Category  string    `gorm:"size:20;not null;default:general;index:idx_category" json:"category"`
	IsActive  bool      `gorm:"not null;default:true;index:idx_active" json:"is_active"`
	CreatedAt time.Time `gorm:"index:idx_author_time,priority:2,sort:desc" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
