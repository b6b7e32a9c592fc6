package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"SocialConnect/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeUnlikeFlow(t *testing.T) {
	db := newTestDB(t)
	pub := &fakePublisher{}
	svc := NewEngagementService(db, NewNotificationService(db, pub))
	ctx := context.Background()

	author := createUser(t, db, "author")
	fan := createUser(t, db, "fan")
	post := createPost(t, db, author, "hello world", time.Now())

	_, err := svc.Like(ctx, fan, post.ID)
	require.NoError(t, err)

	isLiked, count, err := svc.LikeStatus(ctx, fan.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, isLiked)
	assert.EqualValues(t, 1, count)

	// 作者收到 like 通知，事件推到了作者的频道
	var n model.Notification
	require.NoError(t, db.Where("recipient_id = ?", author.ID).First(&n).Error)
	assert.Equal(t, model.NotificationLike, n.Type)
	assert.Equal(t, "fan liked your post", n.Title)
	require.Len(t, pub.channels, 1)
	assert.Equal(t, fmt.Sprintf("notifications:%d", author.ID), pub.channels[0])

	require.NoError(t, svc.Unlike(ctx, fan.ID, post.ID))
	isLiked, count, err = svc.LikeStatus(ctx, fan.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, isLiked)
	assert.EqualValues(t, 0, count)

	// 取消后可以再赞，生成新的行
	like, err := svc.Like(ctx, fan, post.ID)
	require.NoError(t, err)
	assert.NotZero(t, like.ID)
}

func TestLikeOwnPostRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewEngagementService(db, NewNotificationService(db, nil))

	author := createUser(t, db, "author")
	post := createPost(t, db, author, "mine", time.Now())

	_, err := svc.Like(context.Background(), author, post.ID)
	assert.ErrorIs(t, err, ErrSelfLike)
}

func TestLikeDuplicateRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewEngagementService(db, NewNotificationService(db, nil))
	ctx := context.Background()

	author := createUser(t, db, "author")
	fan := createUser(t, db, "fan")
	post := createPost(t, db, author, "hi", time.Now())

	_, err := svc.Like(ctx, fan, post.ID)
	require.NoError(t, err)
	_, err = svc.Like(ctx, fan, post.ID)
	assert.ErrorIs(t, err, ErrAlreadyLiked)
}

func TestLikeInactivePost(t *testing.T) {
	db := newTestDB(t)
	svc := NewEngagementService(db, NewNotificationService(db, nil))
	ctx := context.Background()

	author := createUser(t, db, "author")
	fan := createUser(t, db, "fan")
	post := createPost(t, db, author, "gone", time.Now())
	require.NoError(t, db.Model(post).Update("is_active", false).Error)

	_, err := svc.Like(ctx, fan, post.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUnlikeWithoutLike(t *testing.T) {
	db := newTestDB(t)
	svc := NewEngagementService(db, NewNotificationService(db, nil))

	author := createUser(t, db, "author")
	fan := createUser(t, db, "fan")
	post := createPost(t, db, author, "hi", time.Now())

	assert.ErrorIs(t, svc.Unlike(context.Background(), fan.ID, post.ID), ErrNotLiked)
}

func TestCreateComment(t *testing.T) {
	db := newTestDB(t)
	svc := NewEngagementService(db, NewNotificationService(db, nil))
	ctx := context.Background()

	author := createUser(t, db, "author")
	reader := createUser(t, db, "reader")
	post := createPost(t, db, author, "post body", time.Now())

	comment, err := svc.CreateComment(ctx, reader, post.ID, "nice one")
	require.NoError(t, err)
	assert.Equal(t, "nice one", comment.Content)

	var n model.Notification
	require.NoError(t, db.Where("recipient_id = ?", author.ID).First(&n).Error)
	assert.Equal(t, model.NotificationComment, n.Type)
	assert.Equal(t, "reader commented: nice one", n.Message)

	// 空内容是参数错误
	_, err = svc.CreateComment(ctx, reader, post.ID, "")
	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
}

func TestCommentLongMessageTruncated(t *testing.T) {
	db := newTestDB(t)
	svc := NewEngagementService(db, NewNotificationService(db, nil))
	ctx := context.Background()

	author := createUser(t, db, "author")
	reader := createUser(t, db, "reader")
	post := createPost(t, db, author, "post body", time.Now())

	long := ""
	for i := 0; i < 20; i++ {
		long += "abcde"
	}
	_, err := svc.CreateComment(ctx, reader, post.ID, long)
	require.NoError(t, err)

	var n model.Notification
	require.NoError(t, db.Where("recipient_id = ?", author.ID).First(&n).Error)
	assert.Equal(t, "reader commented: "+long[:50]+"...", n.Message)
}

func TestListComments(t *testing.T) {
	db := newTestDB(t)
	svc := NewEngagementService(db, NewNotificationService(db, nil))
	ctx := context.Background()

	author := createUser(t, db, "author")
	reader := createUser(t, db, "reader")
	post := createPost(t, db, author, "post", time.Now())

	first, err := svc.CreateComment(ctx, reader, post.ID, "first")
	require.NoError(t, err)
	_, err = svc.CreateComment(ctx, reader, post.ID, "second")
	require.NoError(t, err)

	comments, total, err := svc.ListComments(ctx, post.ID, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, comments, 2)
	// 评论按时间正序
	assert.Equal(t, first.ID, comments[0].ID)

	// 软删后不再出现
	require.NoError(t, svc.DeleteComment(ctx, reader, post.ID, first.ID))
	comments, total, err = svc.ListComments(ctx, post.ID, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, comments, 1)
	assert.Equal(t, "second", comments[0].Content)
}

func TestDeleteCommentPermissions(t *testing.T) {
	db := newTestDB(t)
	svc := NewEngagementService(db, NewNotificationService(db, nil))
	ctx := context.Background()

	author := createUser(t, db, "author")
	commenter := createUser(t, db, "commenter")
	stranger := createUser(t, db, "stranger")
	post := createPost(t, db, author, "post", time.Now())
	other := createPost(t, db, author, "other", time.Now())

	comment, err := svc.CreateComment(ctx, commenter, post.ID, "hello")
	require.NoError(t, err)

	// 无关用户不能删
	assert.ErrorIs(t, svc.DeleteComment(ctx, stranger, post.ID, comment.ID), ErrForbidden)

	// 评论挂错帖子按不存在处理
	assert.ErrorIs(t, svc.DeleteComment(ctx, author, other.ID, comment.ID), ErrNotFound)

	// 帖子作者可删他人评论
	require.NoError(t, svc.DeleteComment(ctx, author, post.ID, comment.ID))
}

func TestPublishFailureDoesNotRollback(t *testing.T) {
	db := newTestDB(t)
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := NewEngagementService(db, NewNotificationService(db, pub))
	ctx := context.Background()

	author := createUser(t, db, "author")
	fan := createUser(t, db, "fan")
	post := createPost(t, db, author, "hi", time.Now())

	// 推送失败不影响点赞和通知落库
	_, err := svc.Like(ctx, fan, post.ID)
	require.NoError(t, err)

	var likes, notifs int64
	require.NoError(t, db.Model(&model.Like{}).Count(&likes).Error)
	require.NoError(t, db.Model(&model.Notification{}).Count(&notifs).Error)
	assert.EqualValues(t, 1, likes)
	assert.EqualValues(t, 1, notifs)
}
