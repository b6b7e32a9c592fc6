package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"SocialConnect/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedNotification(t *testing.T, db *gorm.DB, recipient, sender uint64) *model.Notification {
	t.Helper()
	n := &model.Notification{
		RecipientID: recipient,
		SenderID:    sender,
		Type:        model.NotificationFollow,
		Title:       "t",
		Message:     "m",
	}
	require.NoError(t, db.Create(n).Error)
	return n
}

func TestSelfActionSuppressed(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db, nil)

	me := createUser(t, db, "me")
	post := createPost(t, db, me, "mine", time.Now())

	like := &model.Like{UserID: me.ID, PostID: post.ID}
	n, err := svc.CreateLikeNotification(db, like, me, post)
	require.NoError(t, err)
	assert.Nil(t, n)

	comment := &model.Comment{UserID: me.ID, PostID: post.ID, Content: "self"}
	n, err = svc.CreateCommentNotification(db, comment, me, post)
	require.NoError(t, err)
	assert.Nil(t, n)

	var count int64
	require.NoError(t, db.Model(&model.Notification{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	// nil 通知直接跳过，不发事件
	svc.PublishCreated(context.Background(), nil, me)
}

func TestNotificationEventPayload(t *testing.T) {
	db := newTestDB(t)
	pub := &fakePublisher{}
	svc := NewNotificationService(db, pub)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	n := seedNotification(t, db, bob.ID, alice.ID)

	svc.PublishCreated(context.Background(), n, alice)
	require.Len(t, pub.payloads, 1)

	var event struct {
		Type   string `json:"type"`
		Sender struct {
			ID       uint64 `json:"id"`
			Username string `json:"username"`
		} `json:"sender"`
		RecipientID uint64 `json:"recipient_id"`
		Timestamp   string `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal(pub.payloads[0], &event))
	assert.Equal(t, "notification", event.Type)
	assert.Equal(t, alice.ID, event.Sender.ID)
	assert.Equal(t, "alice", event.Sender.Username)
	assert.Equal(t, bob.ID, event.RecipientID)
	_, err := time.Parse(time.RFC3339Nano, event.Timestamp)
	assert.NoError(t, err)
}

func TestMarkReadIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db, nil)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	n := seedNotification(t, db, bob.ID, alice.ID)

	require.NoError(t, svc.MarkRead(ctx, bob.ID, n.ID))
	// 重复标记不报错
	require.NoError(t, svc.MarkRead(ctx, bob.ID, n.ID))

	var got model.Notification
	require.NoError(t, db.First(&got, n.ID).Error)
	assert.True(t, got.IsRead)
}

func TestMarkReadCrossUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db, nil)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	n := seedNotification(t, db, bob.ID, alice.ID)

	// 别人的通知按不存在处理
	assert.ErrorIs(t, svc.MarkRead(ctx, alice.ID, n.ID), ErrNotFound)
	assert.ErrorIs(t, svc.MarkRead(ctx, bob.ID, 9999), ErrNotFound)
}

func TestMarkAllReadAndCounts(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db, nil)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	for i := 0; i < 3; i++ {
		seedNotification(t, db, bob.ID, alice.ID)
	}
	read := seedNotification(t, db, bob.ID, alice.ID)
	require.NoError(t, svc.MarkRead(ctx, bob.ID, read.ID))

	unread, total, err := svc.Counts(ctx, bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, unread)
	assert.EqualValues(t, 4, total)

	marked, err := svc.MarkAllRead(ctx, bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, marked)

	unread, total, err = svc.Counts(ctx, bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, unread)
	assert.EqualValues(t, 4, total)

	// 再标一遍无事发生
	marked, err = svc.MarkAllRead(ctx, bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, marked)
}

func TestNotificationListScopedAndOrdered(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db, nil)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	old := seedNotification(t, db, bob.ID, alice.ID)
	require.NoError(t, db.Model(old).Update("created_at", time.Now().Add(-time.Hour)).Error)
	newer := seedNotification(t, db, bob.ID, alice.ID)
	seedNotification(t, db, carol.ID, alice.ID)

	items, total, err := svc.List(ctx, bob.ID, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, items, 2)
	assert.Equal(t, newer.ID, items[0].ID)
	assert.Equal(t, old.ID, items[1].ID)
}
