package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"SocialConnect/internal/model"
	"SocialConnect/internal/pkg"
	"SocialConnect/internal/repository/mysql"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NotificationService 通知的创建只发生在触发记录的同一事务里；
// 事务提交后再把事件推给实时通道，推送失败只记日志，绝不回滚。
type NotificationService struct {
	db        *gorm.DB
	repo      *mysql.NotificationRepository
	publisher pkg.RealtimePublisher
}

func NewNotificationService(db *gorm.DB, publisher pkg.RealtimePublisher) *NotificationService {
	return &NotificationService{
		db:        db,
		repo:      &mysql.NotificationRepository{DB: db},
		publisher: publisher,
	}
}

// CreateFollowNotification follower==following 时抑制（返回 nil）
func (s *NotificationService) CreateFollowNotification(tx *gorm.DB, follow *model.Follow, follower *model.User) (*model.Notification, error) {
	if follow.FollowerID == follow.FollowingID {
		return nil, nil
	}
	n := &model.Notification{
		RecipientID: follow.FollowingID,
		SenderID:    follower.ID,
		Type:        model.NotificationFollow,
		FollowID:    &follow.ID,
		Title:       follower.Username + " started following you",
		Message:     follower.Username + " started following you",
	}
	if err := s.repo.Create(tx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// CreateLikeNotification 给自己帖子点赞时抑制
func (s *NotificationService) CreateLikeNotification(tx *gorm.DB, like *model.Like, liker *model.User, post *model.Post) (*model.Notification, error) {
	if like.UserID == post.AuthorID {
		return nil, nil
	}
	n := &model.Notification{
		RecipientID: post.AuthorID,
		SenderID:    liker.ID,
		Type:        model.NotificationLike,
		PostID:      &post.ID,
		LikeID:      &like.ID,
		Title:       liker.Username + " liked your post",
		Message:     liker.Username + " liked your post: " + pkg.Truncate(post.Content, 50),
	}
	if err := s.repo.Create(tx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// CreateCommentNotification 评论自己帖子时抑制
func (s *NotificationService) CreateCommentNotification(tx *gorm.DB, comment *model.Comment, commenter *model.User, post *model.Post) (*model.Notification, error) {
	if comment.UserID == post.AuthorID {
		return nil, nil
	}
	n := &model.Notification{
		RecipientID: post.AuthorID,
		SenderID:    commenter.ID,
		Type:        model.NotificationComment,
		PostID:      &post.ID,
		CommentID:   &comment.ID,
		Title:       commenter.Username + " commented on your post",
		Message:     commenter.Username + " commented: " + pkg.Truncate(comment.Content, 50),
	}
	if err := s.repo.Create(tx, n); err != nil {
		return nil, err
	}
	return n, nil
}

type notificationEvent struct {
	Type         string              `json:"type"`
	Notification *model.Notification `json:"notification"`
	Sender       eventSender         `json:"sender"`
	RecipientID  uint64              `json:"recipient_id"`
	Timestamp    string              `json:"timestamp"`
}

type eventSender struct {
	ID        uint64 `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

// PublishCreated fire-and-forget：没配 publisher 或发送失败都只打日志
func (s *NotificationService) PublishCreated(ctx context.Context, n *model.Notification, sender *model.User) {
	if n == nil {
		return
	}

	event := notificationEvent{
		Type:         "notification",
		Notification: n,
		Sender:       eventSender{ID: sender.ID, Username: sender.Username, AvatarURL: sender.AvatarURL},
		RecipientID:  n.RecipientID,
		Timestamp:    time.Now().UTC().Format(time.RFC3339Nano),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		pkg.Log.Warn("notification event marshal failed", zap.Uint64("id", n.ID), zap.Error(err))
		return
	}

	channel := pkg.NotificationChannel(n.RecipientID)
	if s.publisher == nil {
		pkg.Log.Info("realtime publisher not configured, event logged only",
			zap.String("channel", channel), zap.ByteString("payload", payload))
		return
	}
	if err := s.publisher.Publish(ctx, channel, payload); err != nil {
		pkg.Log.Warn("realtime publish failed",
			zap.String("channel", channel), zap.Uint64("notification_id", n.ID), zap.Error(err))
	}
}

func (s *NotificationService) List(ctx context.Context, recipientID uint64, page, size int) ([]model.Notification, int64, error) {
	offset, limit := NormalizePage(page, size)
	return s.repo.ListByRecipient(ctx, recipientID, offset, limit)
}

// MarkRead 幂等；别人的通知按不存在处理，避免暴露存在性
func (s *NotificationService) MarkRead(ctx context.Context, recipientID, notificationID uint64) error {
	n, err := s.repo.FindForRecipient(ctx, notificationID, recipientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if n.IsRead {
		return nil
	}
	return s.repo.MarkRead(ctx, n.ID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID uint64) (int64, error) {
	return s.repo.MarkAllRead(ctx, recipientID)
}

func (s *NotificationService) Counts(ctx context.Context, recipientID uint64) (unread, total int64, err error) {
	if unread, err = s.repo.CountUnread(ctx, recipientID); err != nil {
		return 0, 0, err
	}
	if total, err = s.repo.CountTotal(ctx, recipientID); err != nil {
		return 0, 0, err
	}
	return unread, total, nil
}
