package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devlog/devlog-backend/internal/apperr"
	"github.com/devlog/devlog-backend/internal/database"
	"github.com/devlog/devlog-backend/internal/repository"
	"github.com/devlog/devlog-backend/internal/service"
)

// Handler combines all handler types
type Handler struct {
	Auth        *AuthHandler
	Post        *PostHandler
	Comment     *CommentHandler
	Interaction *InteractionHandler
	Tag         *TagHandler
	Upload      *UploadHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(db database.Service) *Handler {
	gormDB := db.GetDB()
	repo := repository.NewPostRepository(gormDB)
	posts := service.NewPostService(repo)

	return &Handler{
		Auth:        NewAuthHandler(gormDB),
		Post:        NewPostHandler(posts),
		Comment:     NewCommentHandler(posts),
		Interaction: NewInteractionHandler(posts),
		Tag:         NewTagHandler(posts),
		Upload:      NewUploadHandler(gormDB),
	}
}

// respondError maps the error taxonomy to HTTP status codes; anything
// outside it is a storage error and stays opaque.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperr.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
	case errors.Is(err, apperr.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not own this resource"})
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}
