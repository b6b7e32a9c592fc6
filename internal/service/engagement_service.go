package service

import (
	"context"
	"errors"
	"strings"

	"SocialConnect/internal/model"
	"SocialConnect/internal/repository/mysql"

	"gorm.io/gorm"
)

type EngagementService struct {
	db          *gorm.DB
	likeRepo    *mysql.LikeRepository
	commentRepo *mysql.CommentRepository
	postRepo    *mysql.PostRepository
	notifier    *NotificationService
}

func NewEngagementService(db *gorm.DB, notifier *NotificationService) *EngagementService {
	return &EngagementService{
		db:          db,
		likeRepo:    &mysql.LikeRepository{DB: db},
		commentRepo: &mysql.CommentRepository{DB: db},
		postRepo:    &mysql.PostRepository{DB: db},
		notifier:    notifier,
	}
}

// Like 重复点赞报冲突；点赞与通知同一事务，提交后再推事件
func (s *EngagementService) Like(ctx context.Context, user *model.User, postID uint64) (*model.Like, error) {
	post, err := s.postRepo.FindActiveByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if post.AuthorID == user.ID {
		return nil, ErrSelfLike
	}

	var (
		like    *model.Like
		created *model.Notification
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := s.likeRepo.Exists(tx, user.ID, postID)
		if err != nil {
			return err
		}
		if exists {
			return ErrAlreadyLiked
		}

		like = &model.Like{UserID: user.ID, PostID: postID}
		if err := s.likeRepo.Create(tx, like); err != nil {
			return err
		}

		created, err = s.notifier.CreateLikeNotification(tx, like, user, post)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.notifier.PublishCreated(ctx, created, user)
	return like, nil
}

func (s *EngagementService) Unlike(ctx context.Context, userID, postID uint64) error {
	if _, err := s.postRepo.FindActiveByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	deleted, err := s.likeRepo.Delete(ctx, userID, postID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotLiked
	}
	return nil
}

// LikeStatus 点赞数实时聚合
func (s *EngagementService) LikeStatus(ctx context.Context, userID, postID uint64) (isLiked bool, count int64, err error) {
	if _, err = s.postRepo.FindActiveByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, 0, ErrNotFound
		}
		return false, 0, err
	}
	if isLiked, err = s.likeRepo.IsLiked(ctx, userID, postID); err != nil {
		return false, 0, err
	}
	if count, err = s.likeRepo.CountByPost(ctx, postID); err != nil {
		return false, 0, err
	}
	return isLiked, count, nil
}

// CreateComment 评论与通知同一事务，提交后再推事件
func (s *EngagementService) CreateComment(ctx context.Context, user *model.User, postID uint64, content string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, valErr("comment content required")
	}

	post, err := s.postRepo.FindActiveByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var (
		comment *model.Comment
		created *model.Notification
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		comment = &model.Comment{UserID: user.ID, PostID: postID, Content: content, IsActive: true}
		if err := s.commentRepo.Create(tx, comment); err != nil {
			return err
		}
		created, err = s.notifier.CreateCommentNotification(tx, comment, user, post)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.notifier.PublishCreated(ctx, created, user)
	return comment, nil
}

func (s *EngagementService) ListComments(ctx context.Context, postID uint64, page, size int) ([]model.Comment, int64, error) {
	if _, err := s.postRepo.FindActiveByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, err
	}
	offset, limit := NormalizePage(page, size)
	return s.commentRepo.ListByPost(ctx, postID, offset, limit)
}

// DeleteComment 评论作者或帖子作者可删，软删除
func (s *EngagementService) DeleteComment(ctx context.Context, operator *model.User, postID, commentID uint64) error {
	post, err := s.postRepo.FindActiveByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	comment, err := s.commentRepo.FindActiveByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if comment.PostID != post.ID {
		return ErrNotFound
	}
	if comment.UserID != operator.ID && post.AuthorID != operator.ID {
		return ErrForbidden
	}
	return s.commentRepo.SoftDelete(ctx, commentID)
}
