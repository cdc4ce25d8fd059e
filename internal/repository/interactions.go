package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/devlog/devlog-backend/internal/models"
)

// ToggleLike flips the (user, post) like row and reports the resulting
// state. Delete-first keeps the flip to a single statement per branch; the
// unique index on (user_id, post_id) settles concurrent duplicates.
func (r *postRepository) ToggleLike(userID, postID int) (bool, error) {
	if err := r.postExists(r.db, postID); err != nil {
		return false, err
	}

	res := r.db.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Like{})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return false, nil
	}

	like := models.Like{UserID: userID, PostID: postID}
	if err := r.db.Create(&like).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent toggle inserted first; the state it produced stands.
			return true, nil
		}
		return false, err
	}
	return true, nil
}

func (r *postRepository) ToggleBookmark(userID, postID int) (bool, error) {
	if err := r.postExists(r.db, postID); err != nil {
		return false, err
	}

	res := r.db.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Bookmark{})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return false, nil
	}

	bookmark := models.Bookmark{UserID: userID, PostID: postID}
	if err := r.db.Create(&bookmark).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

func (r *postRepository) UserInteractions(userID, postID int) (*models.Interactions, error) {
	var likes, bookmarks int64
	if err := r.db.Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&likes).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Bookmark{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&bookmarks).Error; err != nil {
		return nil, err
	}

	return &models.Interactions{
		Liked:      likes > 0,
		Bookmarked: bookmarks > 0,
		PostID:     postID,
	}, nil
}
