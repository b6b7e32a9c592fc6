package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"SocialConnect/internal/model"
	"SocialConnect/internal/repository/mysql"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminUpdateUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminService(db)
	ctx := context.Background()

	admin := createAdmin(t, db, "root")
	user := createUser(t, db, "rookie")

	role := model.RoleAdmin
	updated, err := svc.UpdateUser(ctx, admin.ID, user.ID, &role, nil)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, updated.Role)

	off := false
	updated, err = svc.UpdateUser(ctx, admin.ID, user.ID, nil, &off)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	// 管理员不能停用自己
	_, err = svc.UpdateUser(ctx, admin.ID, admin.ID, nil, &off)
	assert.ErrorIs(t, err, ErrSelfDeactivate)

	// 但可以改自己的其他字段
	on := true
	_, err = svc.UpdateUser(ctx, admin.ID, admin.ID, nil, &on)
	require.NoError(t, err)

	bad := "superuser"
	_, err = svc.UpdateUser(ctx, admin.ID, user.ID, &bad, nil)
	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))

	_, err = svc.UpdateUser(ctx, admin.ID, 9999, nil, &off)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdminListUsers(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminService(db)
	ctx := context.Background()

	createAdmin(t, db, "root")
	alice := createUser(t, db, "alice")
	createUser(t, db, "bob")
	require.NoError(t, db.Model(alice).Update("is_active", false).Error)

	_, total, err := svc.ListUsers(ctx, mysql.UserFilter{}, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	_, total, err = svc.ListUsers(ctx, mysql.UserFilter{Role: model.RoleAdmin}, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	active := true
	_, total, err = svc.ListUsers(ctx, mysql.UserFilter{IsActive: &active}, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	users, total, err := svc.ListUsers(ctx, mysql.UserFilter{Search: "ali"}, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "alice", users[0].Username)
}

func TestAdminUserDetailAggregates(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminService(db)
	engSvc := NewEngagementService(db, NewNotificationService(db, nil))
	followSvc := NewFollowService(db, NewNotificationService(db, nil))
	ctx := context.Background()

	author := createUser(t, db, "author")
	fan := createUser(t, db, "fan")
	require.NoError(t, followSvc.Follow(ctx, fan, author.ID))

	post := createPost(t, db, author, "hello", time.Now())
	_, err := engSvc.Like(ctx, fan, post.ID)
	require.NoError(t, err)
	_, err = engSvc.CreateComment(ctx, fan, post.ID, "hey")
	require.NoError(t, err)

	detail, err := svc.UserDetail(ctx, author.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, detail.FollowersCount)
	assert.EqualValues(t, 0, detail.FollowingCount)
	assert.EqualValues(t, 1, detail.PostsCount)
	assert.EqualValues(t, 1, detail.TotalLikesReceived)
	assert.EqualValues(t, 1, detail.TotalCommentsReceived)

	_, err = svc.UserDetail(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdminDeletePostAndListing(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminService(db)
	ctx := context.Background()

	author := createUser(t, db, "author")
	post := createPost(t, db, author, "bad content", time.Now())

	require.NoError(t, svc.DeletePost(ctx, post.ID))

	// 后台还能看到下架的帖子
	got, err := svc.PostDetail(ctx, post.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	inactive := false
	_, total, err := svc.ListPosts(ctx, mysql.PostFilter{IsActive: &inactive}, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	assert.ErrorIs(t, svc.DeletePost(ctx, 9999), ErrNotFound)
}

func TestAdminStatsSnapshot(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminService(db)
	engSvc := NewEngagementService(db, NewNotificationService(db, nil))
	ctx := context.Background()

	author := createUser(t, db, "author")
	fan := createUser(t, db, "fan")

	yesterday := time.Now().Add(-36 * time.Hour)
	oldPost := createPost(t, db, author, "old", yesterday)
	fresh := createPost(t, db, author, "fresh", time.Now())

	_, err := engSvc.Like(ctx, fan, fresh.ID)
	require.NoError(t, err)
	_, err = engSvc.CreateComment(ctx, fan, fresh.ID, "hi")
	require.NoError(t, err)

	// 下架帖子不进任何统计
	require.NoError(t, svc.DeletePost(ctx, oldPost.ID))

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalUsers)
	assert.EqualValues(t, 1, stats.TotalPosts)
	assert.EqualValues(t, 1, stats.TotalLikes)
	assert.EqualValues(t, 1, stats.TotalComments)
	assert.EqualValues(t, 1, stats.ActivePostsToday)
	assert.EqualValues(t, 2, stats.UsersCreatedToday)
}
