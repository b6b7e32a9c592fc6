package service

import (
	"context"
	"errors"
	"time"

	"SocialConnect/internal/model"
	"SocialConnect/internal/repository/mysql"

	"gorm.io/gorm"
)

type AdminService struct {
	repo     *mysql.AdminRepository
	userRepo *mysql.UserRepository
	postRepo *mysql.PostRepository
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{
		repo:     &mysql.AdminRepository{DB: db},
		userRepo: &mysql.UserRepository{DB: db},
		postRepo: &mysql.PostRepository{DB: db},
	}
}

func (s *AdminService) ListUsers(ctx context.Context, f mysql.UserFilter, page, size int) ([]model.User, int64, error) {
	offset, limit := NormalizePage(page, size)
	return s.repo.ListUsers(ctx, f, offset, limit)
}

type AdminUserDetail struct {
	model.User
	FollowersCount        int64 `json:"followers_count"`
	FollowingCount        int64 `json:"following_count"`
	PostsCount            int64 `json:"posts_count"`
	TotalLikesReceived    int64 `json:"total_likes_received"`
	TotalCommentsReceived int64 `json:"total_comments_received"`
}

func (s *AdminService) UserDetail(ctx context.Context, userID uint64) (*AdminUserDetail, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	d := &AdminUserDetail{User: *user}
	followRepo := &mysql.FollowRepository{DB: s.repo.DB}
	if d.FollowersCount, err = followRepo.CountFollowers(ctx, userID); err != nil {
		return nil, err
	}
	if d.FollowingCount, err = followRepo.CountFollowing(ctx, userID); err != nil {
		return nil, err
	}
	if d.PostsCount, err = s.postRepo.CountActiveByAuthor(ctx, userID); err != nil {
		return nil, err
	}
	if d.TotalLikesReceived, err = s.repo.LikesReceived(ctx, userID); err != nil {
		return nil, err
	}
	if d.TotalCommentsReceived, err = s.repo.CommentsReceived(ctx, userID); err != nil {
		return nil, err
	}
	return d, nil
}

// UpdateUser 管理员改角色/启停用；不允许自己停用自己
func (s *AdminService) UpdateUser(ctx context.Context, operatorID, userID uint64, role *string, isActive *bool) (*model.User, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	fields := map[string]any{}
	if role != nil {
		if *role != model.RoleUser && *role != model.RoleAdmin {
			return nil, valErr("invalid role")
		}
		fields["role"] = *role
	}
	if isActive != nil {
		if operatorID == userID && !*isActive {
			return nil, ErrSelfDeactivate
		}
		fields["is_active"] = *isActive
	}

	if err := s.repo.UpdateUser(ctx, userID, fields); err != nil {
		return nil, err
	}
	return s.userRepo.FindByID(userID)
}

// ListPosts 后台列表不过滤 is_active，筛选由查询参数决定
func (s *AdminService) ListPosts(ctx context.Context, f mysql.PostFilter, page, size int) ([]model.Post, int64, error) {
	offset, limit := NormalizePage(page, size)
	return s.postRepo.List(ctx, f, offset, limit)
}

func (s *AdminService) PostDetail(ctx context.Context, postID uint64) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return post, nil
}

// DeletePost 管理员可删任何帖子，软删除
func (s *AdminService) DeletePost(ctx context.Context, postID uint64) error {
	if _, err := s.PostDetail(ctx, postID); err != nil {
		return err
	}
	return s.postRepo.SoftDelete(ctx, postID)
}

func (s *AdminService) Stats(ctx context.Context) (*mysql.Stats, error) {
	return s.repo.Snapshot(ctx, time.Now())
}
