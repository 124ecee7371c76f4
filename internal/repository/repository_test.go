package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/quillworks/blog-service/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection so every statement sees the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&domain.AuthorModel{},
		&domain.GroupModel{},
		&domain.PostModel{},
		&domain.CommentModel{},
		&domain.FollowModel{},
	))

	return db
}

func seedAuthor(t *testing.T, db *gorm.DB, id, username string) {
	t.Helper()
	require.NoError(t, db.Create(&domain.AuthorModel{ID: id, Username: username}).Error)
}

func seedGroup(t *testing.T, db *gorm.DB, title, slug string) uint {
	t.Helper()
	model := domain.GroupModel{Title: title, Slug: slug, Description: "about " + title}
	require.NoError(t, db.Create(&model).Error)
	return model.ID
}

func seedPost(t *testing.T, db *gorm.DB, authorID, text string, groupID *uint, createdAt time.Time) uint {
	t.Helper()
	model := domain.PostModel{
		Text:      text,
		AuthorID:  authorID,
		GroupID:   groupID,
		CreatedAt: createdAt,
	}
	require.NoError(t, db.Create(&model).Error)
	return model.ID
}

func seedComment(t *testing.T, db *gorm.DB, postID uint, authorID, text string) uint {
	t.Helper()
	model := domain.CommentModel{PostID: postID, AuthorID: authorID, Text: text}
	require.NoError(t, db.Create(&model).Error)
	return model.ID
}

func count[T any](t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var model T
	var n int64
	require.NoError(t, db.Model(&model).Count(&n).Error)
	return n
}

var testCtx = context.Background()
