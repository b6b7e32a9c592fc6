package mysql

import (
	"context"

	"SocialConnect/internal/model"

	"gorm.io/gorm"
)

type FollowRepository struct {
	DB *gorm.DB
}

// Create 调用方在事务里先 Exists 再 Create，由唯一键兜底并发
func (r *FollowRepository) Create(tx *gorm.DB, follow *model.Follow) error {
	return tx.Create(follow).Error
}

// Delete 返回是否真的删掉了记录
func (r *FollowRepository) Delete(ctx context.Context, followerID, followingID uint64) (bool, error) {
	res := r.DB.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&model.Follow{})
	return res.RowsAffected > 0, res.Error
}

func (r *FollowRepository) Exists(tx *gorm.DB, followerID, followingID uint64) (bool, error) {
	var n int64
	err := tx.Model(&model.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&n).Error
	return n > 0, err
}

func (r *FollowRepository) IsFollowing(ctx context.Context, followerID, followingID uint64) (bool, error) {
	return r.Exists(r.DB.WithContext(ctx), followerID, followingID)
}

// FollowingIDs feed 的作者集合来源
func (r *FollowRepository) FollowingIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.DB.WithContext(ctx).Model(&model.Follow{}).
		Where("follower_id = ?", userID).
		Pluck("following_id", &ids).Error
	return ids, err
}

func (r *FollowRepository) ListFollowers(ctx context.Context, userID uint64) ([]model.User, error) {
	var users []model.User
	err := r.DB.WithContext(ctx).Model(&model.User{}).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.following_id = ?", userID).
		Order("follows.created_at DESC").
		Find(&users).Error
	return users, err
}

func (r *FollowRepository) ListFollowing(ctx context.Context, userID uint64) ([]model.User, error) {
	var users []model.User
	err := r.DB.WithContext(ctx).Model(&model.User{}).
		Joins("JOIN follows ON follows.following_id = users.id").
		Where("follows.follower_id = ?", userID).
		Order("follows.created_at DESC").
		Find(&users).Error
	return users, err
}

func (r *FollowRepository) CountFollowers(ctx context.Context, userID uint64) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Follow{}).
		Where("following_id = ?", userID).Count(&n).Error
	return n, err
}

func (r *FollowRepository) CountFollowing(ctx context.Context, userID uint64) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Follow{}).
		Where("follower_id = ?", userID).Count(&n).Error
	return n, err
}
