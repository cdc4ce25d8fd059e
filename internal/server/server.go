package server

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/devlog/devlog-backend/internal/database"
	"github.com/devlog/devlog-backend/internal/handlers"
	"github.com/devlog/devlog-backend/internal/middleware"
)

type Server struct {
	db      database.Service
	handler *handlers.Handler
}

// New configures the HTTP server around an already-open database handle;
// the entry point owns the database lifecycle.
func New(db database.Service) *http.Server {
	newServer := &Server{
		db:      db,
		handler: handlers.NewHandler(db),
	}

	router := newServer.RegisterRoutes()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // local dev fallback
	}

	server := &http.Server{
		Addr:         "0.0.0.0:" + port,
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Printf("🚀 Server starting on port %s\n", port)

	return server
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.Default()

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.db.Health())
	})

	// Uploaded images are served straight from disk
	r.Static("/uploads", handlers.UploadDir())

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/register", s.handler.Auth.Register)
		api.POST("/login", s.handler.Auth.Login)
		api.POST("/auth/github", s.handler.Auth.GitHubLogin)

		// Post routes (public reads)
		api.GET("/posts", s.handler.Post.GetPosts)
		api.GET("/posts/:slug", s.handler.Post.GetPost)
		api.GET("/posts/:slug/related", s.handler.Post.GetRelatedPosts)

		// Anonymous callers get the zero interaction state
		api.GET("/posts/:slug/interactions", middleware.OptionalAuth(), s.handler.Interaction.GetInteractions)

		// Tag routes (public reads)
		api.GET("/tags", s.handler.Tag.GetTags)

		// Image routes (public reads)
		api.GET("/images/:id", s.handler.Upload.GetImage)

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// Auth protected routes
			protected.GET("/me", s.handler.Auth.GetMe)
			protected.GET("/me/posts", s.handler.Post.GetMyPosts)
			protected.GET("/me/bookmarks", s.handler.Interaction.GetMyBookmarks)

			// Post protected routes
			protected.POST("/posts", s.handler.Post.CreatePost)
			protected.PUT("/posts/:slug", s.handler.Post.UpdatePost)
			protected.DELETE("/posts/:slug", s.handler.Post.DeletePost)

			// Interaction protected routes
			protected.POST("/posts/:slug/like", s.handler.Interaction.ToggleLike)
			protected.POST("/posts/:slug/bookmark", s.handler.Interaction.ToggleBookmark)

			// Comment protected routes
			protected.POST("/posts/:slug/comments", s.handler.Comment.CreateComment)
			protected.DELETE("/comments/:commentId", s.handler.Comment.DeleteComment)

			// Upload protected routes
			protected.POST("/upload", s.handler.Upload.Upload)
			protected.DELETE("/images/:id", s.handler.Upload.DeleteImage)
		}
	}

	return r
}
