package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/devlog/devlog-backend/internal/apperr"
	"github.com/devlog/devlog-backend/internal/models"
	"github.com/devlog/devlog-backend/internal/slug"
)

// PostRepository owns all query construction and transactional mutation for
// posts and their dependents (comments, likes, bookmarks, tags).
type PostRepository interface {
	ListPosts(filter models.PostFilter) (*models.PostPage, error)
	GetPostBySlug(slug string, incrementView bool) (*models.Post, *models.PostCounts, error)
	GetPostIDBySlug(slug string) (int, error)
	CreatePost(authorID int, req models.CreatePostRequest) (*models.Post, error)
	UpdatePost(userID, postID int, req models.UpdatePostRequest) (*models.Post, error)
	DeletePost(userID, postID int) error

	CreateComment(userID, postID int, req models.CreateCommentRequest) (*models.Comment, error)
	DeleteComment(userID, commentID int) error

	ToggleLike(userID, postID int) (bool, error)
	ToggleBookmark(userID, postID int) (bool, error)
	UserInteractions(userID, postID int) (*models.Interactions, error)

	FindTags() ([]models.TagWithCount, error)
	FindRelatedPosts(postID, limit int) ([]models.PostSummary, error)

	ListPostsByAuthor(authorID int) ([]models.PostSummary, error)
	ListBookmarkedPosts(userID int) ([]models.PostSummary, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func applyFilter(q *gorm.DB, filter models.PostFilter, db *gorm.DB) *gorm.DB {
	if filter.Keyword != "" {
		kw := "%" + strings.ToLower(filter.Keyword) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", kw, kw)
	}
	if filter.Tag != "" {
		sub := db.Table("post_tags").
			Select("post_tags.post_id").
			Joins("JOIN tags ON tags.id = post_tags.tag_id").
			Where("tags.name = ?", filter.Tag)
		q = q.Where("posts.id IN (?)", sub)
	}
	return q
}

func orderClause(sortBy string) string {
	switch sortBy {
	case "popular":
		return "view_count DESC"
	case "comments":
		return "(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) DESC"
	default: // latest
		return "created_at DESC"
	}
}

func (r *postRepository) ListPosts(filter models.PostFilter) (*models.PostPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}

	query := applyFilter(r.db.Model(&models.Post{}), filter, r.db)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var posts []models.Post
	offset := (filter.Page - 1) * filter.Limit
	err := query.
		Preload("Author").
		Preload("Tags").
		Order(orderClause(filter.SortBy)).
		Offset(offset).
		Limit(filter.Limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	summaries, err := r.summarize(posts)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return &models.PostPage{
		Posts: summaries,
		Pagination: models.Pagination{
			Page:       filter.Page,
			Limit:      filter.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// summarize builds list projections, annotating each post with its comment
// and like counts.
func (r *postRepository) summarize(posts []models.Post) ([]models.PostSummary, error) {
	summaries := make([]models.PostSummary, 0, len(posts))
	for _, post := range posts {
		var comments, likes int64
		if err := r.db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&comments).Error; err != nil {
			return nil, err
		}
		if err := r.db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&likes).Error; err != nil {
			return nil, err
		}
		summaries = append(summaries, models.PostSummary{
			ID:           post.ID,
			Title:        post.Title,
			Slug:         post.Slug,
			Thumbnail:    post.Thumbnail,
			ViewCount:    post.ViewCount,
			CreatedAt:    post.CreatedAt,
			Author:       post.Author,
			Tags:         post.Tags,
			CommentCount: comments,
			LikeCount:    likes,
		})
	}
	return summaries, nil
}

func (r *postRepository) GetPostBySlug(slugStr string, incrementView bool) (*models.Post, *models.PostCounts, error) {
	var post models.Post
	err := r.db.
		Preload("Author").
		Preload("Tags").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Where("parent_id IS NULL").Order("created_at DESC")
		}).
		Preload("Comments.User").
		Preload("Comments.Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Comments.Replies.User").
		Where("slug = ?", slugStr).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.ErrNotFound
		}
		return nil, nil, err
	}

	counts := &models.PostCounts{}
	if err := r.db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&counts.Likes).Error; err != nil {
		return nil, nil, err
	}
	if err := r.db.Model(&models.Bookmark{}).Where("post_id = ?", post.ID).Count(&counts.Bookmarks).Error; err != nil {
		return nil, nil, err
	}
	if err := r.db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&counts.Comments).Error; err != nil {
		return nil, nil, err
	}

	if incrementView {
		// Best-effort: a single atomic UPDATE, decoupled from the read above.
		r.db.Model(&models.Post{}).
			Where("id = ?", post.ID).
			UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
		post.ViewCount++
	}

	return &post, counts, nil
}

// GetPostIDBySlug resolves the public identifier to the row id.
func (r *postRepository) GetPostIDBySlug(slugStr string) (int, error) {
	var post models.Post
	err := r.db.Select("id").Where("slug = ?", slugStr).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperr.ErrNotFound
		}
		return 0, err
	}
	return post.ID, nil
}

// resolveSlug returns candidate unless another post (excluding excludeID)
// already uses it, in which case the current timestamp is appended.
func (r *postRepository) resolveSlug(candidate string, excludeID int) (string, error) {
	var count int64
	q := r.db.Model(&models.Post{}).Where("slug = ?", candidate)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return "", err
	}
	if count > 0 {
		return fmt.Sprintf("%s-%d", candidate, time.Now().UnixMilli()), nil
	}
	return candidate, nil
}

// baseSlug derives the slug candidate for a title. Titles that reduce to
// nothing still get an addressable slug.
func baseSlug(title string) string {
	s := slug.Make(title)
	if s == "" {
		s = fmt.Sprintf("post-%d", time.Now().UnixMilli())
	}
	return s
}

// upsertTags resolves tag names to rows, creating missing ones
// (connect-or-create).
func upsertTags(tx *gorm.DB, names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		var tag models.Tag
		if err := tx.Where("name = ?", name).FirstOrCreate(&tag, models.Tag{Name: name}).Error; err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func (r *postRepository) CreatePost(authorID int, req models.CreatePostRequest) (*models.Post, error) {
	base := baseSlug(req.Title)
	finalSlug, err := r.resolveSlug(base, 0)
	if err != nil {
		return nil, err
	}

	create := func(slugStr string) (*models.Post, error) {
		post := models.Post{
			Title:     req.Title,
			Slug:      slugStr,
			Content:   req.Content,
			Thumbnail: req.Thumbnail,
			AuthorID:  authorID,
		}
		err := r.db.Transaction(func(tx *gorm.DB) error {
			tags, err := upsertTags(tx, req.Tags)
			if err != nil {
				return err
			}
			post.Tags = tags
			return tx.Create(&post).Error
		})
		if err != nil {
			return nil, err
		}
		return &post, nil
	}

	post, err := create(finalSlug)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost the slug race; the unique index is the real guarantee, the
		// timestamp suffix just makes a second collision unlikely.
		post, err = create(fmt.Sprintf("%s-%d", base, time.Now().UnixMilli()))
	}
	if err != nil {
		return nil, err
	}

	return r.loadPost(post.ID)
}

func (r *postRepository) loadPost(id int) (*models.Post, error) {
	var post models.Post
	err := r.db.Preload("Author").Preload("Tags").First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// ownedPost loads just enough of a post to authorize a mutation.
func (r *postRepository) ownedPost(userID, postID int) (*models.Post, error) {
	var post models.Post
	err := r.db.Select("id", "author_id", "slug").First(&post, postID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	if post.AuthorID != userID {
		return nil, apperr.ErrForbidden
	}
	return &post, nil
}

func (r *postRepository) UpdatePost(userID, postID int, req models.UpdatePostRequest) (*models.Post, error) {
	post, err := r.ownedPost(userID, postID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	base := ""
	if req.Title != nil && *req.Title != "" {
		updates["title"] = *req.Title
		base = baseSlug(*req.Title)
		if base != post.Slug {
			newSlug, err := r.resolveSlug(base, post.ID)
			if err != nil {
				return nil, err
			}
			updates["slug"] = newSlug
		}
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.Thumbnail != nil {
		updates["thumbnail"] = *req.Thumbnail
	}

	apply := func() error {
		return r.db.Transaction(func(tx *gorm.DB) error {
			// Clearing then reconnecting avoids stale tag associations.
			if req.Tags != nil {
				if err := tx.Model(post).Association("Tags").Clear(); err != nil {
					return err
				}
				tags, err := upsertTags(tx, req.Tags)
				if err != nil {
					return err
				}
				if len(tags) > 0 {
					if err := tx.Model(post).Association("Tags").Append(tags); err != nil {
						return err
					}
				}
			}
			if len(updates) > 0 {
				if err := tx.Model(post).Updates(updates).Error; err != nil {
					return err
				}
			}
			return nil
		})
	}

	err = apply()
	if errors.Is(err, gorm.ErrDuplicatedKey) && base != "" {
		updates["slug"] = fmt.Sprintf("%s-%d", base, time.Now().UnixMilli())
		err = apply()
	}
	if err != nil {
		return nil, err
	}

	return r.loadPost(post.ID)
}

func (r *postRepository) DeletePost(userID, postID int) error {
	post, err := r.ownedPost(userID, postID)
	if err != nil {
		return err
	}

	// Ordered deletes: replies reference comments, everything else
	// references the post. One transaction, all or nothing.
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Bookmark{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ? AND parent_id IS NOT NULL", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Model(post).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, post.ID).Error
	})
}

func (r *postRepository) ListPostsByAuthor(authorID int) ([]models.PostSummary, error) {
	var posts []models.Post
	err := r.db.
		Preload("Author").
		Preload("Tags").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return r.summarize(posts)
}

func (r *postRepository) ListBookmarkedPosts(userID int) ([]models.PostSummary, error) {
	sub := r.db.Model(&models.Bookmark{}).Select("post_id").Where("user_id = ?", userID)

	var posts []models.Post
	err := r.db.
		Preload("Author").
		Preload("Tags").
		Where("id IN (?)", sub).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return r.summarize(posts)
}
