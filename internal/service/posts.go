package service

import (
	"fmt"

	"github.com/devlog/devlog-backend/internal/apperr"
	"github.com/devlog/devlog-backend/internal/models"
	"github.com/devlog/devlog-backend/internal/repository"
)

const defaultRelatedLimit = 3

// PostService wraps the repository with field validation and caller-identity
// checks. userID == 0 means an anonymous caller.
type PostService struct {
	repo repository.PostRepository
}

func NewPostService(repo repository.PostRepository) *PostService {
	return &PostService{repo: repo}
}

func requireUser(userID int) error {
	if userID == 0 {
		return apperr.ErrUnauthenticated
	}
	return nil
}

func (s *PostService) ListPosts(filter models.PostFilter) (*models.PostPage, error) {
	return s.repo.ListPosts(filter)
}

func (s *PostService) GetPostBySlug(slug string, incrementView bool) (*models.Post, *models.PostCounts, error) {
	return s.repo.GetPostBySlug(slug, incrementView)
}

func (s *PostService) GetPostIDBySlug(slug string) (int, error) {
	return s.repo.GetPostIDBySlug(slug)
}

func (s *PostService) CreatePost(userID int, req models.CreatePostRequest) (*models.Post, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if req.Title == "" || req.Content == "" {
		return nil, fmt.Errorf("%w: title and content are required", apperr.ErrValidation)
	}
	return s.repo.CreatePost(userID, req)
}

func (s *PostService) UpdatePost(userID, postID int, req models.UpdatePostRequest) (*models.Post, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.repo.UpdatePost(userID, postID, req)
}

func (s *PostService) DeletePost(userID, postID int) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	return s.repo.DeletePost(userID, postID)
}

func (s *PostService) CreateComment(userID, postID int, req models.CreateCommentRequest) (*models.Comment, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if req.Content == "" {
		return nil, fmt.Errorf("%w: comment content is required", apperr.ErrValidation)
	}
	return s.repo.CreateComment(userID, postID, req)
}

func (s *PostService) DeleteComment(userID, commentID int) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	return s.repo.DeleteComment(userID, commentID)
}

func (s *PostService) ToggleLike(userID, postID int) (bool, error) {
	if err := requireUser(userID); err != nil {
		return false, err
	}
	return s.repo.ToggleLike(userID, postID)
}

func (s *PostService) ToggleBookmark(userID, postID int) (bool, error) {
	if err := requireUser(userID); err != nil {
		return false, err
	}
	return s.repo.ToggleBookmark(userID, postID)
}

// UserInteractions degrades to the zero state for anonymous callers so the
// detail page works without a session.
func (s *PostService) UserInteractions(userID, postID int) (*models.Interactions, error) {
	if userID == 0 {
		return &models.Interactions{Liked: false, Bookmarked: false, PostID: postID}, nil
	}
	return s.repo.UserInteractions(userID, postID)
}

func (s *PostService) FindTags() ([]models.TagWithCount, error) {
	return s.repo.FindTags()
}

func (s *PostService) FindRelatedPosts(postID, limit int) ([]models.PostSummary, error) {
	if limit < 1 {
		limit = defaultRelatedLimit
	}
	return s.repo.FindRelatedPosts(postID, limit)
}

func (s *PostService) ListPostsByAuthor(authorID int) ([]models.PostSummary, error) {
	return s.repo.ListPostsByAuthor(authorID)
}

func (s *PostService) ListBookmarkedPosts(userID int) ([]models.PostSummary, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.repo.ListBookmarkedPosts(userID)
}
