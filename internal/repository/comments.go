package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/devlog/devlog-backend/internal/apperr"
	"github.com/devlog/devlog-backend/internal/models"
)

func (r *postRepository) postExists(tx *gorm.DB, postID int) error {
	var count int64
	if err := tx.Model(&models.Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *postRepository) CreateComment(userID, postID int, req models.CreateCommentRequest) (*models.Comment, error) {
	if err := r.postExists(r.db, postID); err != nil {
		return nil, err
	}

	comment := models.Comment{
		Content:  req.Content,
		UserID:   userID,
		PostID:   postID,
		ParentID: req.ParentID,
	}
	if err := r.db.Create(&comment).Error; err != nil {
		return nil, err
	}

	if err := r.db.Preload("User").First(&comment, comment.ID).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *postRepository) DeleteComment(userID, commentID int) error {
	var comment models.Comment
	err := r.db.Select("id", "user_id", "parent_id").First(&comment, commentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return err
	}
	if comment.UserID != userID {
		return apperr.ErrForbidden
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		// A top-level comment takes its replies with it.
		if comment.ParentID == nil {
			if err := tx.Where("parent_id = ?", comment.ID).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Comment{}, comment.ID).Error
	})
}
