package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/devlog/devlog-backend/internal/models"
)

const tagListLimit = 20

// FindTags returns the most used tags, each annotated with its post count.
func (r *postRepository) FindTags() ([]models.TagWithCount, error) {
	var tags []models.TagWithCount
	err := r.db.Table("tags").
		Select("tags.id, tags.name, COUNT(post_tags.post_id) AS post_count").
		Joins("LEFT JOIN post_tags ON post_tags.tag_id = tags.id").
		Group("tags.id, tags.name").
		Order("post_count DESC").
		Limit(tagListLimit).
		Scan(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// FindRelatedPosts returns other posts sharing at least one tag with the
// given post, newest first. A missing post or a post without tags yields an
// empty result rather than an error.
func (r *postRepository) FindRelatedPosts(postID, limit int) ([]models.PostSummary, error) {
	var post models.Post
	err := r.db.Preload("Tags").Select("id").First(&post, postID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []models.PostSummary{}, nil
		}
		return nil, err
	}

	tagIDs := make([]int, 0, len(post.Tags))
	for _, tag := range post.Tags {
		tagIDs = append(tagIDs, tag.ID)
	}
	if len(tagIDs) == 0 {
		return []models.PostSummary{}, nil
	}

	sub := r.db.Table("post_tags").Select("post_id").Where("tag_id IN ?", tagIDs)

	var posts []models.Post
	err = r.db.
		Preload("Author").
		Preload("Tags").
		Where("id IN (?)", sub).
		Where("id <> ?", postID).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	return r.summarize(posts)
}
