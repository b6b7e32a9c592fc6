package service

import (
	"context"

	"SocialConnect/internal/model"
	"SocialConnect/internal/repository/mysql"

	"gorm.io/gorm"
)

type FeedService struct {
	postRepo    *mysql.PostRepository
	followRepo  *mysql.FollowRepository
	likeRepo    *mysql.LikeRepository
	commentRepo *mysql.CommentRepository
	userRepo    *mysql.UserRepository
}

func NewFeedService(db *gorm.DB) *FeedService {
	return &FeedService{
		postRepo:    &mysql.PostRepository{DB: db},
		followRepo:  &mysql.FollowRepository{DB: db},
		likeRepo:    &mysql.LikeRepository{DB: db},
		commentRepo: &mysql.CommentRepository{DB: db},
		userRepo:    &mysql.UserRepository{DB: db},
	}
}

type AuthorSummary struct {
	ID        uint64 `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

// FeedPost 计数都是查询时聚合出来的，不落库不缓存
type FeedPost struct {
	model.Post
	Author        AuthorSummary `json:"author"`
	LikeCount     int64         `json:"like_count"`
	CommentCount  int64         `json:"comment_count"`
	IsLikedByUser bool          `json:"is_liked_by_user"`
}

// GetFeed 作者集合 = 我关注的人 + 我自己；活跃帖子按时间倒序，id 倒序打破并列
func (s *FeedService) GetFeed(ctx context.Context, viewerID uint64, page, size int) ([]FeedPost, int64, error) {
	followingIDs, err := s.followRepo.FollowingIDs(ctx, viewerID)
	if err != nil {
		return nil, 0, err
	}
	authorIDs := append(followingIDs, viewerID)

	offset, limit := NormalizePage(page, size)
	posts, total, err := s.postRepo.ListByAuthors(ctx, authorIDs, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	annotated, err := s.Annotate(ctx, viewerID, posts)
	if err != nil {
		return nil, 0, err
	}
	return annotated, total, nil
}

// Annotate 批量补齐点赞数、活跃评论数、viewer 是否点过赞和作者摘要
func (s *FeedService) Annotate(ctx context.Context, viewerID uint64, posts []model.Post) ([]FeedPost, error) {
	if len(posts) == 0 {
		return []FeedPost{}, nil
	}

	postIDs := make([]uint64, 0, len(posts))
	authorIDs := make([]uint64, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
		authorIDs = append(authorIDs, p.AuthorID)
	}

	likeCounts, err := s.likeRepo.CountByPosts(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	commentCounts, err := s.commentRepo.CountByPosts(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	liked := map[uint64]bool{}
	if viewerID > 0 {
		if liked, err = s.likeRepo.LikedPostIDs(ctx, viewerID, postIDs); err != nil {
			return nil, err
		}
	}
	authors, err := s.userRepo.FindByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	out := make([]FeedPost, 0, len(posts))
	for _, p := range posts {
		fp := FeedPost{
			Post:          p,
			LikeCount:     likeCounts[p.ID],
			CommentCount:  commentCounts[p.ID],
			IsLikedByUser: liked[p.ID],
		}
		if a, ok := authors[p.AuthorID]; ok {
			fp.Author = AuthorSummary{ID: a.ID, Username: a.Username, AvatarURL: a.AvatarURL}
		}
		out = append(out, fp)
	}
	return out, nil
}
