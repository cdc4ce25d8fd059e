package handlers

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"

	"github.com/devlog/devlog-backend/internal/middleware"
	"github.com/devlog/devlog-backend/internal/models"
	"github.com/devlog/devlog-backend/internal/service"
)

type PostHandler struct {
	posts *service.PostService
}

func NewPostHandler(posts *service.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// markdown renderer configured with Goldmark and useful extensions
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,     // tables, strikethrough, task lists, autolinks (GFM set)
		extension.Linkify, // linkify raw URLs
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithUnsafe(), // allow raw HTML passthrough in Markdown
	),
)

func renderMarkdown(content string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(content), &buf); err != nil {
		return content
	}
	return buf.String()
}

// GetPosts returns a page of post summaries.
//
// URL example: /api/posts?page=1&limit=10&keyword=gorm&tag=go&sortBy=latest
func (h *PostHandler) GetPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	filter := models.PostFilter{
		Keyword: c.Query("keyword"),
		Tag:     c.Query("tag"),
		Page:    page,
		Limit:   limit,
		SortBy:  c.DefaultQuery("sortBy", "latest"),
	}

	result, err := h.posts.ListPosts(filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetPost returns a single post by slug, with relations, counts and the
// rendered content. ?incrementView=true bumps the view counter.
func (h *PostHandler) GetPost(c *gin.Context) {
	slug := c.Param("slug")
	incrementView := c.Query("incrementView") == "true"

	post, counts, err := h.posts.GetPostBySlug(slug, incrementView)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"post":         post,
		"counts":       counts,
		"content_html": renderMarkdown(post.Content),
	})
}

// CreatePost creates a new post (PROTECTED - requires authentication)
func (h *PostHandler) CreatePost(c *gin.Context) {
	var input models.CreatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.posts.CreatePost(middleware.CurrentUserID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// UpdatePost updates an existing post (PROTECTED - requires ownership)
func (h *PostHandler) UpdatePost(c *gin.Context) {
	postID, err := h.posts.GetPostIDBySlug(c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	var input models.UpdatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.posts.UpdatePost(middleware.CurrentUserID(c), postID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost deletes a post and everything hanging off it (PROTECTED -
// requires ownership)
func (h *PostHandler) DeletePost(c *gin.Context) {
	postID, err := h.posts.GetPostIDBySlug(c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.posts.DeletePost(middleware.CurrentUserID(c), postID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

// GetRelatedPosts returns posts sharing at least one tag with this one.
func (h *PostHandler) GetRelatedPosts(c *gin.Context) {
	postID, err := h.posts.GetPostIDBySlug(c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "3"))

	related, err := h.posts.FindRelatedPosts(postID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, related)
}

// GetMyPosts returns the authenticated user's posts, newest first.
func (h *PostHandler) GetMyPosts(c *gin.Context) {
	posts, err := h.posts.ListPostsByAuthor(middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}
