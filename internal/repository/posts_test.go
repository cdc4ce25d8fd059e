package repository

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/devlog/devlog-backend/internal/apperr"
	"github.com/devlog/devlog-backend/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
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
		&models.Image{},
	)
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Email:        email,
		Name:         "Test User",
		Role:         models.RoleUser,
		AuthProvider: "email",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestPost(t *testing.T, repo PostRepository, authorID int, title string, tags ...string) *models.Post {
	t.Helper()

	post, err := repo.CreatePost(authorID, models.CreatePostRequest{
		Title:   title,
		Content: "Some content about " + title,
		Tags:    tags,
	})
	require.NoError(t, err)
	return post
}

func TestCreatePost(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	user := createTestUser(t, db, "author@example.com")

	post := createTestPost(t, repo, user.ID, "Hello, World!", "a", "b")

	assert.Equal(t, "hello-world", post.Slug)
	assert.Equal(t, user.ID, post.AuthorID)
	assert.Equal(t, user.ID, post.Author.ID)
	assert.Len(t, post.Tags, 2)
}

func TestCreatePost_SameTitleYieldsDistinctSlugs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	user := createTestUser(t, db, "author@example.com")

	first := createTestPost(t, repo, user.ID, "Hello, World!")
	second := createTestPost(t, repo, user.ID, "Hello, World!")

	assert.Equal(t, "hello-world", first.Slug)
	assert.NotEqual(t, first.Slug, second.Slug)
	assert.True(t, strings.HasPrefix(second.Slug, "hello-world-"))
}

func TestCreatePost_EmptySlugTitleStillAddressable(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	user := createTestUser(t, db, "author@example.com")

	post := createTestPost(t, repo, user.ID, "!!!")

	assert.NotEmpty(t, post.Slug)
	assert.True(t, strings.HasPrefix(post.Slug, "post-"))
}

func TestCreatePost_TagConnectOrCreate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	user := createTestUser(t, db, "author@example.com")

	createTestPost(t, repo, user.ID, "First", "go", "gin")
	createTestPost(t, repo, user.ID, "Second", "go", "gorm")

	var count int64
	require.NoError(t, db.Model(&models.Tag{}).Count(&count).Error)
	assert.Equal(t, int64(3), count, "existing tag names must be reused, not duplicated")
}

func TestGetPostBySlug(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	author := createTestUser(t, db, "author@example.com")
	commenter := createTestUser(t, db, "commenter@example.com")

	created := createTestPost(t, repo, author.ID, "A Post", "go")

	parent, err := repo.CreateComment(commenter.ID, created.ID, models.CreateCommentRequest{Content: "nice"})
	require.NoError(t, err)
	_, err = repo.CreateComment(author.ID, created.ID, models.CreateCommentRequest{
		Content:  "thanks",
		ParentID: &parent.ID,
	})
	require.NoError(t, err)

	_, err = repo.ToggleLike(commenter.ID, created.ID)
	require.NoError(t, err)
	_, err = repo.ToggleBookmark(commenter.ID, created.ID)
	require.NoError(t, err)

	post, counts, err := repo.GetPostBySlug("a-post", false)
	require.NoError(t, err)

	assert.Equal(t, created.ID, post.ID)
	assert.Equal(t, author.ID, post.Author.ID)
	require.Len(t, post.Comments, 1, "only top-level comments at the first level")
	assert.Equal(t, commenter.ID, post.Comments[0].User.ID)
	require.Len(t, post.Comments[0].Replies, 1)
	assert.Equal(t, author.ID, post.Comments[0].Replies[0].User.ID)

	assert.Equal(t, int64(1), counts.Likes)
	assert.Equal(t, int64(1), counts.Bookmarks)
	assert.Equal(t, int64(2), counts.Comments)
}

func TestGetPostBySlug_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)

	_, _, err := repo.GetPostBySlug("nope", false)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestGetPostBySlug_IncrementView(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	user := createTestUser(t, db, "author@example.com")
	created := createTestPost(t, repo, user.ID, "Counted")

	_, _, err := repo.GetPostBySlug(created.Slug, true)
	require.NoError(t, err)
	post, _, err := repo.GetPostBySlug(created.Slug, true)
	require.NoError(t, err)
	assert.Equal(t, 2, post.ViewCount)

	var stored models.Post
	require.NoError(t, db.First(&stored, created.ID).Error)
	assert.Equal(t, 2, stored.ViewCount)
}

func TestUpdatePost(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	user := createTestUser(t, db, "author@example.com")
	created := createTestPost(t, repo, user.ID, "Old Title", "go")

	newTitle := "New Title"
	newContent := "updated content"
	updated, err := repo.UpdatePost(user.ID, created.ID, models.UpdatePostRequest{
		Title:   &newTitle,
		Content: &newContent,
	})
	require.NoError(t, err)

	assert.Equal(t, "New Title", updated.Title)
	assert.Equal(t, "new-title", updated.Slug)
	assert.Equal(t, "updated content", updated.Content)
	assert.Len(t, updated.Tags, 1, "tags untouched when not supplied")
}

func TestUpdatePost_NonOwnerForbidden(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")
	created := createTestPost(t, repo, owner.ID, "Mine")

	newTitle := "Stolen"
	_, err := repo.UpdatePost(other.ID, created.ID, models.UpdatePostRequest{Title: &newTitle})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	var stored models.Post
	require.NoError(t, db.First(&stored, created.ID).Error)
	assert.Equal(t, "Mine", stored.Title, "post must be unchanged after a forbidden update")
}

func TestUpdatePost_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	user := createTestUser(t, db, "author@example.com")

	newTitle := "Whatever"
	_, err := repo.UpdatePost(user.ID, 9999, models.UpdatePostRequest{Title: &newTitle})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdatePost_ReplacesTags(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	user := createTestUser(t, db, "author@example.com")
	created := createTestPost(t, repo, user.ID, "Tagged", "go", "gin")

	updated, err := repo.UpdatePost(user.ID, created.ID, models.UpdatePostRequest{
		Tags: []string{"gorm"},
	})
	require.NoError(t, err)

	require.Len(t, updated.Tags, 1)
	assert.Equal(t, "gorm", updated.Tags[0].Name)
}

func TestUpdatePost_SlugCollisionOnRename(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	user := createTestUser(t, db, "author@example.com")
	createTestPost(t, repo, user.ID, "Taken Title")
	created := createTestPost(t, repo, user.ID, "Something Else")

	newTitle := "Taken Title"
	updated, err := repo.UpdatePost(user.ID, created.ID, models.UpdatePostRequest{Title: &newTitle})
	require.NoError(t, err)

	assert.NotEqual(t, "taken-title", updated.Slug)
	assert.True(t, strings.HasPrefix(updated.Slug, "taken-title-"))
}

func TestDeletePost_Cascade(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	author := createTestUser(t, db, "author@example.com")
	reader := createTestUser(t, db, "reader@example.com")
	created := createTestPost(t, repo, author.ID, "Doomed", "go")

	parent, err := repo.CreateComment(reader.ID, created.ID, models.CreateCommentRequest{Content: "hi"})
	require.NoError(t, err)
	_, err = repo.CreateComment(author.ID, created.ID, models.CreateCommentRequest{
		Content:  "hello",
		ParentID: &parent.ID,
	})
	require.NoError(t, err)
	_, err = repo.ToggleLike(reader.ID, created.ID)
	require.NoError(t, err)
	_, err = repo.ToggleBookmark(reader.ID, created.ID)
	require.NoError(t, err)

	require.NoError(t, repo.DeletePost(author.ID, created.ID))

	_, _, err = repo.GetPostBySlug(created.Slug, false)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	for name, model := range map[string]interface{}{
		"comments":  &models.Comment{},
		"likes":     &models.Like{},
		"bookmarks": &models.Bookmark{},
	} {
		var count int64
		require.NoError(t, db.Model(model).Where("post_id = ?", created.ID).Count(&count).Error)
		assert.Zero(t, count, "%s must be removed with the post", name)
	}
}

func TestDeletePost_NonOwnerForbidden(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")
	created := createTestPost(t, repo, owner.ID, "Mine")

	err := repo.DeletePost(other.ID, created.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	var count int64
	require.NoError(t, db.Model(&models.Post{}).Where("id = ?", created.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestListPosts_Pagination(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	user := createTestUser(t, db, "author@example.com")

	titles := []string{"One", "Two", "Three", "Four", "Five"}
	for _, title := range titles {
		createTestPost(t, repo, user.ID, title)
	}

	page, err := repo.ListPosts(models.PostFilter{Page: 1, Limit: 2})
	require.NoError(t, err)

	assert.Len(t, page.Posts, 2)
	assert.Equal(t, int64(5), page.Pagination.Total)
	assert.Equal(t, 3, page.Pagination.TotalPages)

	last, err := repo.ListPosts(models.PostFilter{Page: 3, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, last.Posts, 1)
}

func TestListPosts_KeywordCaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	user := createTestUser(t, db, "author@example.com")

	createTestPost(t, repo, user.ID, "Learning GORM")
	createTestPost(t, repo, user.ID, "Something Else")

	page, err := repo.ListPosts(models.PostFilter{Keyword: "gorm"})
	require.NoError(t, err)

	require.Len(t, page.Posts, 1)
	assert.Equal(t, "Learning GORM", page.Posts[0].Title)
}

func TestListPosts_TagFilter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	user := createTestUser(t, db, "author@example.com")

	createTestPost(t, repo, user.ID, "Go Post", "go")
	createTestPost(t, repo, user.ID, "Rust Post", "rust")

	page, err := repo.ListPosts(models.PostFilter{Tag: "go"})
	require.NoError(t, err)

	require.Len(t, page.Posts, 1)
	assert.Equal(t, "Go Post", page.Posts[0].Title)
}

func TestListPosts_SortByPopular(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	user := createTestUser(t, db, "author@example.com")

	low := createTestPost(t, repo, user.ID, "Low")
	high := createTestPost(t, repo, user.ID, "High")
	mid := createTestPost(t, repo, user.ID, "Mid")

	require.NoError(t, db.Model(&models.Post{}).Where("id = ?", high.ID).Update("view_count", 50).Error)
	require.NoError(t, db.Model(&models.Post{}).Where("id = ?", mid.ID).Update("view_count", 10).Error)
	require.NoError(t, db.Model(&models.Post{}).Where("id = ?", low.ID).Update("view_count", 1).Error)

	page, err := repo.ListPosts(models.PostFilter{SortBy: "popular"})
	require.NoError(t, err)

	require.Len(t, page.Posts, 3)
	for i := 1; i < len(page.Posts); i++ {
		assert.GreaterOrEqual(t, page.Posts[i-1].ViewCount, page.Posts[i].ViewCount)
	}
}

func TestListPosts_SortByComments(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	user := createTestUser(t, db, "author@example.com")

	quiet := createTestPost(t, repo, user.ID, "Quiet")
	busy := createTestPost(t, repo, user.ID, "Busy")

	for i := 0; i < 3; i++ {
		_, err := repo.CreateComment(user.ID, busy.ID, models.CreateCommentRequest{Content: "c"})
		require.NoError(t, err)
	}
	_, err := repo.CreateComment(user.ID, quiet.ID, models.CreateCommentRequest{Content: "c"})
	require.NoError(t, err)

	page, err := repo.ListPosts(models.PostFilter{SortBy: "comments"})
	require.NoError(t, err)

	require.Len(t, page.Posts, 2)
	assert.Equal(t, "Busy", page.Posts[0].Title)
	assert.Equal(t, int64(3), page.Posts[0].CommentCount)
}

func TestListPosts_LatestByDefault(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	user := createTestUser(t, db, "author@example.com")

	older := createTestPost(t, repo, user.ID, "Older")
	newer := createTestPost(t, repo, user.ID, "Newer")
	require.NoError(t, db.Model(&models.Post{}).Where("id = ?", older.ID).
		Update("created_at", time.Now().Add(-time.Hour)).Error)
	require.NoError(t, db.Model(&models.Post{}).Where("id = ?", newer.ID).
		Update("created_at", time.Now()).Error)

	page, err := repo.ListPosts(models.PostFilter{})
	require.NoError(t, err)

	require.Len(t, page.Posts, 2)
	assert.Equal(t, "Newer", page.Posts[0].Title)
}

func TestGetPostIDBySlug(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	user := createTestUser(t, db, "author@example.com")
	created := createTestPost(t, repo, user.ID, "Findable")

	id, err := repo.GetPostIDBySlug("findable")
	require.NoError(t, err)
	assert.Equal(t, created.ID, id)

	_, err = repo.GetPostIDBySlug("missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestListPostsByAuthor(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	createTestPost(t, repo, alice.ID, "Alice One")
	createTestPost(t, repo, alice.ID, "Alice Two")
	createTestPost(t, repo, bob.ID, "Bob One")

	posts, err := repo.ListPostsByAuthor(alice.ID)
	require.NoError(t, err)
	assert.Len(t, posts, 2)
}
