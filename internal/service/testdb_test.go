package service

import (
	"context"
	"testing"
	"time"

	"SocialConnect/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // :memory: 每个连接是独立库

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Follow{},
		&model.Post{},
		&model.Like{},
		&model.Comment{},
		&model.Notification{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	u := &model.User{
		Username:       username,
		Email:          username + "@example.com",
		Password:       "x",
		Role:           model.RoleUser,
		PrivacySetting: model.PrivacyPublic,
		IsActive:       true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func createAdmin(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	u := createUser(t, db, username)
	require.NoError(t, db.Model(u).Update("role", model.RoleAdmin).Error)
	u.Role = model.RoleAdmin
	return u
}

func createPost(t *testing.T, db *gorm.DB, author *model.User, content string, at time.Time) *model.Post {
	t.Helper()
	p := &model.Post{
		AuthorID:  author.ID,
		Content:   content,
		Category:  "general",
		IsActive:  true,
		CreatedAt: at,
		UpdatedAt: at,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

// fakePublisher 记录发布的事件，可注入错误
type fakePublisher struct {
	channels []string
	payloads [][]byte
	err      error
}

func (f *fakePublisher) Publish(_ context.Context, channel string, payload []byte) error {
	if f.err != nil {
		return f.err
	}
	f.channels = append(f.channels, channel)
	f.payloads = append(f.payloads, payload)
	return nil
}

func (f *fakePublisher) Close() error { return nil }
