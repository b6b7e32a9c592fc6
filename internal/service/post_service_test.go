package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	ctx := context.Background()

	author := createUser(t, db, "author")

	post, err := svc.Create(ctx, author.ID, "hello", "", "")
	require.NoError(t, err)
	assert.Equal(t, "general", post.Category) // 默认分类
	assert.True(t, post.IsActive)

	var ve *ValidationError
	_, err = svc.Create(ctx, author.ID, "   ", "", "")
	assert.True(t, errors.As(err, &ve))

	_, err = svc.Create(ctx, author.ID, "hi", "nonsense", "")
	assert.True(t, errors.As(err, &ve))
}

func TestUpdatePostAuthorOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	ctx := context.Background()

	author := createUser(t, db, "author")
	other := createUser(t, db, "other")
	post := createPost(t, db, author, "before", time.Now())

	_, err := svc.Update(ctx, other.ID, post.ID, "hacked", "", "")
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.Update(ctx, author.ID, post.ID, "after", "travel", "")
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Content)
	assert.Equal(t, "travel", updated.Category)
}

func TestDeletePostSoft(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	ctx := context.Background()

	author := createUser(t, db, "author")
	other := createUser(t, db, "other")
	post := createPost(t, db, author, "bye", time.Now())

	assert.ErrorIs(t, svc.Delete(ctx, other.ID, post.ID), ErrForbidden)
	require.NoError(t, svc.Delete(ctx, author.ID, post.ID))

	// 软删后详情 404，列表不再出现
	_, err := svc.GetActive(ctx, post.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	posts, total, err := svc.List(ctx, "", 0, "", 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
	assert.Empty(t, posts)

	// 再删一次也按不存在处理
	assert.ErrorIs(t, svc.Delete(ctx, author.ID, post.ID), ErrNotFound)
}

func TestListPostsFilters(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	base := time.Now().Add(-time.Hour)
	createPost(t, db, alice, "go generics deep dive", base)
	travel := createPost(t, db, bob, "trip to osaka", base.Add(time.Minute))
	require.NoError(t, db.Model(travel).Update("category", "travel").Error)

	// 按分类
	posts, total, err := svc.List(ctx, "travel", 0, "", 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, posts, 1)
	assert.Equal(t, travel.ID, posts[0].ID)

	// 按作者
	posts, total, err = svc.List(ctx, "", alice.ID, "", 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, alice.ID, posts[0].AuthorID)

	// 内容搜索
	_, total, err = svc.List(ctx, "", 0, "generics", 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	// 按作者用户名搜索
	_, total, err = svc.List(ctx, "", 0, "bob", 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}
