package main

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/devlog/devlog-backend/internal/database"
	"github.com/devlog/devlog-backend/internal/models"
	"github.com/devlog/devlog-backend/internal/repository"
)

func upsertUser(db *gorm.DB, email, name, role string) (*models.User, error) {
	var user models.User
	err := db.Where("email = ?", email).
		FirstOrCreate(&user, models.User{Email: email, Name: name, Role: role, AuthProvider: "email"}).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func main() {
	db, err := database.New()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	gormDB := db.GetDB()

	tagNames := []string{"Go", "Gin", "GORM", "PostgreSQL", "Docker", "Testing"}
	for _, name := range tagNames {
		var tag models.Tag
		if err := gormDB.Where("name = ?", name).FirstOrCreate(&tag, models.Tag{Name: name}).Error; err != nil {
			log.Fatalf("Failed to seed tag %q: %v", name, err)
		}
	}
	log.Printf("Seeded tags: %v", tagNames)

	admin, err := upsertUser(gormDB, "admin@example.com", "Admin", models.RoleAdmin)
	if err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}
	user, err := upsertUser(gormDB, "user@example.com", "Regular User", models.RoleUser)
	if err != nil {
		log.Fatalf("Failed to seed user: %v", err)
	}
	log.Printf("Seeded users: %s, %s", admin.Name, user.Name)

	repo := repository.NewPostRepository(gormDB)

	posts := []struct {
		authorID int
		req      models.CreatePostRequest
	}{
		{
			authorID: admin.ID,
			req: models.CreatePostRequest{
				Title: "Building a REST API with Gin and GORM",
				Content: "# Building a REST API with Gin and GORM\n\n" +
					"Gin handles routing and middleware, GORM handles the relational mapping. " +
					"This post walks through wiring the two together behind a repository layer.\n\n" +
					"## Project layout\n\n" +
					"Keep handlers thin and push query construction into a repository that takes " +
					"`*gorm.DB` through its constructor.\n",
				Tags: []string{"Go", "Gin", "GORM"},
			},
		},
		{
			authorID: admin.ID,
			req: models.CreatePostRequest{
				Title: "Postgres Transactions in Practice",
				Content: "# Postgres Transactions in Practice\n\n" +
					"Multi-step mutations like cascading deletes belong in a single transaction. " +
					"GORM's `Transaction` helper rolls everything back on the first error.\n",
				Tags: []string{"Go", "PostgreSQL"},
			},
		},
		{
			authorID: user.ID,
			req: models.CreatePostRequest{
				Title: "Testing GORM Code Without a Server",
				Content: "# Testing GORM Code Without a Server\n\n" +
					"An in-memory SQLite database keeps repository tests fast, and a throwaway " +
					"Postgres container covers the dialect-specific paths.\n",
				Tags: []string{"Go", "Testing", "Docker"},
			},
		},
	}

	for _, p := range posts {
		var existing models.Post
		err := gormDB.Where("title = ? AND author_id = ?", p.req.Title, p.authorID).First(&existing).Error
		if err == nil {
			continue // already seeded
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Failed to check post %q: %v", p.req.Title, err)
		}

		post, err := repo.CreatePost(p.authorID, p.req)
		if err != nil {
			log.Fatalf("Failed to seed post %q: %v", p.req.Title, err)
		}
		log.Printf("Seeded post: %s (%s)", post.Title, post.Slug)
	}

	log.Println("✅ Seeding completed")
}
