package service

import (
	"context"
	"errors"
	"strings"

	"SocialConnect/internal/model"
	"SocialConnect/internal/repository/mysql"

	"gorm.io/gorm"
)

type PostService struct {
	repo *mysql.PostRepository
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{repo: &mysql.PostRepository{DB: db}}
}

func (s *PostService) Create(ctx context.Context, authorID uint64, content, category, imageURL string) (*model.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, valErr("content required")
	}
	if category == "" {
		category = "general"
	}
	if !model.ValidCategory(category) {
		return nil, valErr("invalid category")
	}

	post := &model.Post{
		AuthorID: authorID,
		Content:  content,
		Category: category,
		ImageURL: imageURL,
		IsActive: true,
	}
	if err := s.repo.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) GetActive(ctx context.Context, postID uint64) (*model.Post, error) {
	post, err := s.repo.FindActiveByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return post, nil
}

// Update 仅作者可改
func (s *PostService) Update(ctx context.Context, operatorID, postID uint64, content, category, imageURL string) (*model.Post, error) {
	post, err := s.GetActive(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != operatorID {
		return nil, ErrForbidden
	}

	fields := map[string]any{}
	if c := strings.TrimSpace(content); c != "" {
		fields["content"] = c
	}
	if category != "" {
		if !model.ValidCategory(category) {
			return nil, valErr("invalid category")
		}
		fields["category"] = category
	}
	if imageURL != "" {
		fields["image_url"] = imageURL
	}
	if err := s.repo.Update(ctx, postID, fields); err != nil {
		return nil, err
	}
	return s.GetActive(ctx, postID)
}

// Delete 仅作者可删，软删除
func (s *PostService) Delete(ctx context.Context, operatorID, postID uint64) error {
	post, err := s.GetActive(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != operatorID {
		return ErrForbidden
	}
	return s.repo.SoftDelete(ctx, postID)
}

// List 公开列表，只含活跃帖子
func (s *PostService) List(ctx context.Context, category string, authorID uint64, search string, page, size int) ([]model.Post, int64, error) {
	active := true
	offset, limit := NormalizePage(page, size)
	return s.repo.List(ctx, mysql.PostFilter{
		Category: category,
		AuthorID: authorID,
		Search:   search,
		IsActive: &active,
	}, offset, limit)
}

func (s *PostService) ListByAuthor(ctx context.Context, authorID uint64, page, size int) ([]model.Post, int64, error) {
	return s.List(ctx, "", authorID, "", page, size)
}
