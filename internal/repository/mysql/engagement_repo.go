package mysql

import (
	"context"

	"SocialConnect/internal/model"

	"gorm.io/gorm"
)

type LikeRepository struct {
	DB *gorm.DB
}

type CommentRepository struct {
	DB *gorm.DB
}

func (r *LikeRepository) Create(tx *gorm.DB, like *model.Like) error {
	return tx.Create(like).Error
}

func (r *LikeRepository) Exists(tx *gorm.DB, userID, postID uint64) (bool, error) {
	var n int64
	err := tx.Model(&model.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&n).Error
	return n > 0, err
}

// Delete 返回是否真的删掉了记录
func (r *LikeRepository) Delete(ctx context.Context, userID, postID uint64) (bool, error) {
	res := r.DB.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&model.Like{})
	return res.RowsAffected > 0, res.Error
}

func (r *LikeRepository) IsLiked(ctx context.Context, userID, postID uint64) (bool, error) {
	return r.Exists(r.DB.WithContext(ctx), userID, postID)
}

// CountByPost 实时计数，不走任何缓存
func (r *LikeRepository) CountByPost(ctx context.Context, postID uint64) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Like{}).
		Where("post_id = ?", postID).Count(&n).Error
	return n, err
}

// CountByPosts feed 批量聚合：post_id -> 点赞数
func (r *LikeRepository) CountByPosts(ctx context.Context, postIDs []uint64) (map[uint64]int64, error) {
	return groupCount(r.DB.WithContext(ctx).Model(&model.Like{}).Where("post_id IN ?", postIDs))
}

// LikedPostIDs viewer 在 postIDs 里点过赞的帖子集合
func (r *LikeRepository) LikedPostIDs(ctx context.Context, userID uint64, postIDs []uint64) (map[uint64]bool, error) {
	var ids []uint64
	err := r.DB.WithContext(ctx).Model(&model.Like{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, err
	}
	liked := make(map[uint64]bool, len(ids))
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

func (r *CommentRepository) Create(tx *gorm.DB, comment *model.Comment) error {
	return tx.Create(comment).Error
}

func (r *CommentRepository) FindActiveByID(ctx context.Context, id uint64) (*model.Comment, error) {
	var comment model.Comment
	err := r.DB.WithContext(ctx).First(&comment, "id = ? AND is_active = ?", id, true).Error
	return &comment, err
}

// ListByPost 正序分页，只取活跃评论
func (r *CommentRepository) ListByPost(ctx context.Context, postID uint64, offset, limit int) ([]model.Comment, int64, error) {
	q := r.DB.WithContext(ctx).Model(&model.Comment{}).
		Where("post_id = ? AND is_active = ?", postID, true)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []model.Comment
	err := q.Order("created_at ASC, id ASC").
		Offset(offset).Limit(limit).
		Find(&list).Error
	return list, total, err
}

func (r *CommentRepository) SoftDelete(ctx context.Context, commentID uint64) error {
	return r.DB.WithContext(ctx).Model(&model.Comment{}).
		Where("id = ?", commentID).
		Update("is_active", false).Error
}

func (r *CommentRepository) CountActiveByPost(ctx context.Context, postID uint64) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Comment{}).
		Where("post_id = ? AND is_active = ?", postID, true).Count(&n).Error
	return n, err
}

// CountByPosts feed 批量聚合：post_id -> 活跃评论数
func (r *CommentRepository) CountByPosts(ctx context.Context, postIDs []uint64) (map[uint64]int64, error) {
	return groupCount(r.DB.WithContext(ctx).Model(&model.Comment{}).
		Where("post_id IN ? AND is_active = ?", postIDs, true))
}

type postCount struct {
	PostID uint64
	N      int64
}

func groupCount(q *gorm.DB) (map[uint64]int64, error) {
	var rows []postCount
	if err := q.Select("post_id, COUNT(*) AS n").Group("post_id").Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[uint64]int64, len(rows))
	for _, row := range rows {
		counts[row.PostID] = row.N
	}
	return counts, nil
}
