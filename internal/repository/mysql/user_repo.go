package mysql

import (
	"context"
	"time"

	"SocialConnect/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint64) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

// FindByIdentifier 用户名或邮箱登录
func (r *UserRepository) FindByIdentifier(identifier string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("username = ? OR email = ?", identifier, identifier).First(&user).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) UpdatePassword(userID uint64, hashed string) error {
	return r.DB.Model(&model.User{}).Where("id = ?", userID).Update("password", hashed).Error
}

func (r *UserRepository) MarkEmailVerified(userID uint64) error {
	return r.DB.Model(&model.User{}).Where("id = ?", userID).Update("is_email_verified", true).Error
}

func (r *UserRepository) UpdateProfile(userID uint64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.DB.Model(&model.User{}).Where("id = ?", userID).Updates(fields).Error
}

func (r *UserRepository) UpdateAvatar(userID uint64, url string) error {
	return r.DB.Model(&model.User{}).Where("id = ?", userID).Update("avatar_url", url).Error
}

func (r *UserRepository) TouchLastLogin(userID uint64, at time.Time) error {
	return r.DB.Model(&model.User{}).Where("id = ?", userID).Update("last_login_at", at).Error
}

// FindByIDs 批量查作者，id -> user
func (r *UserRepository) FindByIDs(ctx context.Context, ids []uint64) (map[uint64]model.User, error) {
	var users []model.User
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	out := make(map[uint64]model.User, len(users))
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}

// ListDiscover 最新注册的活跃用户，排除自己
func (r *UserRepository) ListDiscover(excludeID uint64, limit int) ([]model.User, error) {
	var list []model.User
	err := r.DB.
		Where("is_active = ? AND id <> ?", true, excludeID).
		Order("created_at DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}
