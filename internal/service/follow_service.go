package service

import (
	"context"
	"errors"

	"SocialConnect/internal/model"
	"SocialConnect/internal/repository/mysql"

	"gorm.io/gorm"
)

type FollowService struct {
	db       *gorm.DB
	repo     *mysql.FollowRepository
	userRepo *mysql.UserRepository
	notifier *NotificationService
}

func NewFollowService(db *gorm.DB, notifier *NotificationService) *FollowService {
	return &FollowService{
		db:       db,
		repo:     &mysql.FollowRepository{DB: db},
		userRepo: &mysql.UserRepository{DB: db},
		notifier: notifier,
	}
}

// Follow 自关注只在这一处拦截；通知与关注边同一事务落库，提交后再推事件
func (s *FollowService) Follow(ctx context.Context, follower *model.User, targetID uint64) error {
	if follower.ID == targetID {
		return ErrSelfFollow
	}
	if _, err := s.userRepo.FindByID(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	var created *model.Notification
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := s.repo.Exists(tx, follower.ID, targetID)
		if err != nil {
			return err
		}
		if exists {
			return ErrAlreadyFollowing
		}

		follow := &model.Follow{FollowerID: follower.ID, FollowingID: targetID}
		if err := s.repo.Create(tx, follow); err != nil {
			return err
		}

		created, err = s.notifier.CreateFollowNotification(tx, follow, follower)
		return err
	})
	if err != nil {
		return err
	}

	s.notifier.PublishCreated(ctx, created, follower)
	return nil
}

func (s *FollowService) Unfollow(ctx context.Context, followerID, targetID uint64) error {
	if followerID == targetID {
		return ErrSelfFollow
	}
	deleted, err := s.repo.Delete(ctx, followerID, targetID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFollowing
	}
	return nil
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, targetID uint64) (bool, error) {
	return s.repo.IsFollowing(ctx, followerID, targetID)
}

func (s *FollowService) ListFollowers(ctx context.Context, userID uint64) ([]model.User, error) {
	return s.repo.ListFollowers(ctx, userID)
}

func (s *FollowService) ListFollowing(ctx context.Context, userID uint64) ([]model.User, error) {
	return s.repo.ListFollowing(ctx, userID)
}
