package main

import (
	"log"

	"github.com/devlog/devlog-backend/internal/database"
	"github.com/devlog/devlog-backend/internal/server"
)

func main() {
	db, err := database.New()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	srv := server.New(db)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
