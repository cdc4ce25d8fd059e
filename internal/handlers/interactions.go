package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devlog/devlog-backend/internal/middleware"
	"github.com/devlog/devlog-backend/internal/service"
)

type InteractionHandler struct {
	posts *service.PostService
}

func NewInteractionHandler(posts *service.PostService) *InteractionHandler {
	return &InteractionHandler{posts: posts}
}

// ToggleLike flips the caller's like on a post and reports the new state
// (PROTECTED - requires authentication)
func (h *InteractionHandler) ToggleLike(c *gin.Context) {
	postID, err := h.posts.GetPostIDBySlug(c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	liked, err := h.posts.ToggleLike(middleware.CurrentUserID(c), postID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": liked, "post_id": postID})
}

// ToggleBookmark flips the caller's bookmark on a post (PROTECTED -
// requires authentication)
func (h *InteractionHandler) ToggleBookmark(c *gin.Context) {
	postID, err := h.posts.GetPostIDBySlug(c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	bookmarked, err := h.posts.ToggleBookmark(middleware.CurrentUserID(c), postID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookmarked": bookmarked, "post_id": postID})
}

// GetInteractions reports whether the caller liked/bookmarked a post.
// Anonymous callers get the zero state rather than an error.
func (h *InteractionHandler) GetInteractions(c *gin.Context) {
	postID, err := h.posts.GetPostIDBySlug(c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	interactions, err := h.posts.UserInteractions(middleware.CurrentUserID(c), postID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, interactions)
}

// GetMyBookmarks returns the posts the caller has bookmarked.
func (h *InteractionHandler) GetMyBookmarks(c *gin.Context) {
	posts, err := h.posts.ListBookmarkedPosts(middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}
