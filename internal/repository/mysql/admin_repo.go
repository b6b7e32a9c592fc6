package mysql

import (
	"context"
	"time"

	"SocialConnect/internal/model"

	"gorm.io/gorm"
)

type AdminRepository struct {
	DB *gorm.DB
}

type UserFilter struct {
	Search   string
	Role     string
	IsActive *bool
}

// Stats 直接聚合出来的平台统计快照
type Stats struct {
	TotalUsers        int64 `json:"total_users"`
	TotalPosts        int64 `json:"total_posts"`
	TotalLikes        int64 `json:"total_likes"`
	TotalComments     int64 `json:"total_comments"`
	ActiveUsersToday  int64 `json:"active_users_today"`
	ActivePostsToday  int64 `json:"active_posts_today"`
	UsersCreatedToday int64 `json:"users_created_today"`
	PostsCreatedToday int64 `json:"posts_created_today"`
}

func (r *AdminRepository) ListUsers(ctx context.Context, f UserFilter, offset, limit int) ([]model.User, int64, error) {
	q := r.DB.WithContext(ctx).Model(&model.User{})
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("username LIKE ? OR email LIKE ?", like, like)
	}
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []model.User
	err := q.Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&list).Error
	return list, total, err
}

func (r *AdminRepository) UpdateUser(ctx context.Context, userID uint64, fields map[string]any) error {
	return r.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).Updates(fields).Error
}

// LikesReceived 用户活跃帖子收到的点赞总数
func (r *AdminRepository) LikesReceived(ctx context.Context, userID uint64) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Like{}).
		Joins("JOIN posts ON posts.id = likes.post_id").
		Where("posts.author_id = ? AND posts.is_active = ?", userID, true).
		Count(&n).Error
	return n, err
}

// CommentsReceived 用户活跃帖子收到的活跃评论总数
func (r *AdminRepository) CommentsReceived(ctx context.Context, userID uint64) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Comment{}).
		Joins("JOIN posts ON posts.id = comments.post_id").
		Where("posts.author_id = ? AND posts.is_active = ? AND comments.is_active = ?", userID, true, true).
		Count(&n).Error
	return n, err
}

// Snapshot 请求时直接聚合，不做物化
func (r *AdminRepository) Snapshot(ctx context.Context, now time.Time) (*Stats, error) {
	db := r.DB.WithContext(ctx)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var s Stats
	steps := []func() *gorm.DB{
		func() *gorm.DB { return db.Model(&model.User{}).Count(&s.TotalUsers) },
		func() *gorm.DB {
			return db.Model(&model.Post{}).Where("is_active = ?", true).Count(&s.TotalPosts)
		},
		func() *gorm.DB {
			return db.Model(&model.Like{}).
				Joins("JOIN posts ON posts.id = likes.post_id").
				Where("posts.is_active = ?", true).
				Count(&s.TotalLikes)
		},
		func() *gorm.DB {
			return db.Model(&model.Comment{}).
				Joins("JOIN posts ON posts.id = comments.post_id").
				Where("posts.is_active = ? AND comments.is_active = ?", true, true).
				Count(&s.TotalComments)
		},
		func() *gorm.DB {
			return db.Model(&model.User{}).Where("last_login_at >= ?", todayStart).Count(&s.ActiveUsersToday)
		},
		func() *gorm.DB {
			return db.Model(&model.Post{}).
				Where("is_active = ? AND created_at >= ?", true, todayStart).
				Count(&s.ActivePostsToday)
		},
		func() *gorm.DB {
			return db.Model(&model.User{}).Where("created_at >= ?", todayStart).Count(&s.UsersCreatedToday)
		},
		func() *gorm.DB {
			return db.Model(&model.Post{}).Where("created_at >= ?", todayStart).Count(&s.PostsCreatedToday)
		},
	}
	for _, step := range steps {
		if err := step().Error; err != nil {
			return nil, err
		}
	}
	return &s, nil
}
