package mysql

import (
	"context"

	"SocialConnect/internal/model"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	DB *gorm.DB
}

// Create 在触发记录的同一事务里调用
func (r *NotificationRepository) Create(tx *gorm.DB, n *model.Notification) error {
	return tx.Create(n).Error
}

func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipientID uint64, offset, limit int) ([]model.Notification, int64, error) {
	q := r.DB.WithContext(ctx).Model(&model.Notification{}).
		Where("recipient_id = ?", recipientID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []model.Notification
	err := q.Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&list).Error
	return list, total, err
}

// FindForRecipient 跨用户访问按不存在处理
func (r *NotificationRepository) FindForRecipient(ctx context.Context, id, recipientID uint64) (*model.Notification, error) {
	var n model.Notification
	err := r.DB.WithContext(ctx).
		First(&n, "id = ? AND recipient_id = ?", id, recipientID).Error
	return &n, err
}

// MarkRead 单向幂等：重复标记不报错
func (r *NotificationRepository) MarkRead(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}

// MarkAllRead 返回实际改动的行数
func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipientID uint64) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&model.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

func (r *NotificationRepository) CountUnread(ctx context.Context, recipientID uint64) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).Count(&n).Error
	return n, err
}

func (r *NotificationRepository) CountTotal(ctx context.Context, recipientID uint64) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Notification{}).
		Where("recipient_id = ?", recipientID).Count(&n).Error
	return n, err
}
