package mysql

import (
	"context"

	"SocialConnect/internal/model"

	"gorm.io/gorm"
)

type PostRepository struct {
	DB *gorm.DB
}

// PostFilter 公共列表和后台列表共用的筛选条件
type PostFilter struct {
	Category string
	AuthorID uint64
	Search   string
	IsActive *bool
}

func (r *PostRepository) Create(post *model.Post) error {
	return r.DB.Create(post).Error
}

func (r *PostRepository) FindActiveByID(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := r.DB.WithContext(ctx).First(&post, "id = ? AND is_active = ?", id, true).Error
	return &post, err
}

// FindByID 后台用，不过滤 is_active
func (r *PostRepository) FindByID(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := r.DB.WithContext(ctx).First(&post, id).Error
	return &post, err
}

func (r *PostRepository) Update(ctx context.Context, postID uint64, fields map[string]any) error {
	return r.DB.WithContext(ctx).Model(&model.Post{}).Where("id = ?", postID).Updates(fields).Error
}

// SoftDelete 幂等：已删除时影响 0 行也算成功
func (r *PostRepository) SoftDelete(ctx context.Context, postID uint64) error {
	return r.DB.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", postID).
		Update("is_active", false).Error
}

func (r *PostRepository) applyFilter(q *gorm.DB, f PostFilter) *gorm.DB {
	if f.Category != "" {
		q = q.Where("posts.category = ?", f.Category)
	}
	if f.AuthorID > 0 {
		q = q.Where("posts.author_id = ?", f.AuthorID)
	}
	if f.IsActive != nil {
		q = q.Where("posts.is_active = ?", *f.IsActive)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Joins("JOIN users ON users.id = posts.author_id").
			Where("posts.content LIKE ? OR users.username LIKE ?", like, like)
	}
	return q
}

// List 时间倒序、id 倒序打破并列，保证分页稳定
func (r *PostRepository) List(ctx context.Context, f PostFilter, offset, limit int) ([]model.Post, int64, error) {
	q := r.applyFilter(r.DB.WithContext(ctx).Model(&model.Post{}), f)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []model.Post
	err := q.Order("posts.created_at DESC, posts.id DESC").
		Offset(offset).Limit(limit).
		Find(&list).Error
	return list, total, err
}

// ListByAuthors feed 查询：作者集合内的活跃帖子
func (r *PostRepository) ListByAuthors(ctx context.Context, authorIDs []uint64, offset, limit int) ([]model.Post, int64, error) {
	q := r.DB.WithContext(ctx).Model(&model.Post{}).
		Where("author_id IN ? AND is_active = ?", authorIDs, true)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []model.Post
	err := q.Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&list).Error
	return list, total, err
}

func (r *PostRepository) CountActiveByAuthor(ctx context.Context, authorID uint64) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Post{}).
		Where("author_id = ? AND is_active = ?", authorID, true).Count(&n).Error
	return n, err
}
