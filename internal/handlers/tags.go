package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devlog/devlog-backend/internal/service"
)

type TagHandler struct {
	posts *service.PostService
}

func NewTagHandler(posts *service.PostService) *TagHandler {
	return &TagHandler{posts: posts}
}

// GetTags returns the most used tags with their post counts.
func (h *TagHandler) GetTags(c *gin.Context) {
	tags, err := h.posts.FindTags()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tags)
}
