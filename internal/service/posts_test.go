package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/devlog/devlog-backend/internal/apperr"
	"github.com/devlog/devlog-backend/internal/models"
	"github.com/devlog/devlog-backend/internal/repository"
)

func setupService(t *testing.T) (*PostService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Bookmark{},
	)
	require.NoError(t, err)

	return NewPostService(repository.NewPostRepository(db)), db
}

func seedUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := &models.User{Email: "user@example.com", Name: "User", Role: models.RoleUser, AuthProvider: "email"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestCreatePost_RequiresTitleAndContent(t *testing.T) {
	svc, db := setupService(t)
	user := seedUser(t, db)

	_, err := svc.CreatePost(user.ID, models.CreatePostRequest{Title: "", Content: "body"})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.CreatePost(user.ID, models.CreatePostRequest{Title: "Title", Content: ""})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestMutations_RequireAuthentication(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.CreatePost(0, models.CreatePostRequest{Title: "T", Content: "C"})
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

	title := "T"
	_, err = svc.UpdatePost(0, 1, models.UpdatePostRequest{Title: &title})
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

	assert.ErrorIs(t, svc.DeletePost(0, 1), apperr.ErrUnauthenticated)

	_, err = svc.CreateComment(0, 1, models.CreateCommentRequest{Content: "hi"})
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

	assert.ErrorIs(t, svc.DeleteComment(0, 1), apperr.ErrUnauthenticated)

	_, err = svc.ToggleLike(0, 1)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

	_, err = svc.ToggleBookmark(0, 1)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

	_, err = svc.ListBookmarkedPosts(0)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestCreateComment_RequiresContent(t *testing.T) {
	svc, db := setupService(t)
	user := seedUser(t, db)

	post, err := svc.CreatePost(user.ID, models.CreatePostRequest{Title: "T", Content: "C"})
	require.NoError(t, err)

	_, err = svc.CreateComment(user.ID, post.ID, models.CreateCommentRequest{Content: ""})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestUserInteractions_AnonymousZeroState(t *testing.T) {
	svc, _ := setupService(t)

	state, err := svc.UserInteractions(0, 42)
	require.NoError(t, err)

	assert.False(t, state.Liked)
	assert.False(t, state.Bookmarked)
	assert.Equal(t, 42, state.PostID)
}

func TestFindRelatedPosts_DefaultLimit(t *testing.T) {
	svc, db := setupService(t)
	user := seedUser(t, db)

	anchor, err := svc.CreatePost(user.ID, models.CreatePostRequest{
		Title: "Anchor", Content: "C", Tags: []string{"go"},
	})
	require.NoError(t, err)

	for _, title := range []string{"A", "B", "C", "D", "E"} {
		_, err := svc.CreatePost(user.ID, models.CreatePostRequest{
			Title: title, Content: "C", Tags: []string{"go"},
		})
		require.NoError(t, err)
	}

	posts, err := svc.FindRelatedPosts(anchor.ID, 0)
	require.NoError(t, err)
	assert.Len(t, posts, defaultRelatedLimit)
}
