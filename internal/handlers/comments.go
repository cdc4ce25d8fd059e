package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/devlog/devlog-backend/internal/middleware"
	"github.com/devlog/devlog-backend/internal/models"
	"github.com/devlog/devlog-backend/internal/service"
)

type CommentHandler struct {
	posts *service.PostService
}

func NewCommentHandler(posts *service.PostService) *CommentHandler {
	return &CommentHandler{posts: posts}
}

// CreateComment attaches a comment (or a reply, when parent_id is set) to a
// post (PROTECTED - requires authentication)
func (h *CommentHandler) CreateComment(c *gin.Context) {
	postID, err := h.posts.GetPostIDBySlug(c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	var input models.CreateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.posts.CreateComment(middleware.CurrentUserID(c), postID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// DeleteComment deletes the caller's comment; a top-level comment takes its
// replies with it (PROTECTED - requires ownership)
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	commentID, err := strconv.Atoi(c.Param("commentId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment id"})
		return
	}

	if err := h.posts.DeleteComment(middleware.CurrentUserID(c), commentID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}
