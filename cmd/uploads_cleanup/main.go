package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"applyhub/internal/database"
	"applyhub/internal/repository"
)

// Submissions write the resume to disk before anything else, so a failed
// order or insert leaves the file behind. This sweep removes files no
// application record references.
const minAge = 24 * time.Hour

func main() {
	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	repo := repository.NewApplicationRepository(db)
	referenced, err := repo.ResumeFilenames(context.Background())
	if err != nil {
		log.Fatalf("load referenced resumes failed: %v", err)
	}

	entries, err := os.ReadDir(uploadDir)
	if err != nil {
		log.Fatalf("read upload dir failed: %v", err)
	}

	cutoff := time.Now().Add(-minAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := referenced[entry.Name()]; ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			log.Printf("stat %s failed: %v", entry.Name(), err)
			continue
		}
		// fresh files may belong to a submission still in flight
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(uploadDir, entry.Name())); err != nil {
			log.Printf("remove %s failed: %v", entry.Name(), err)
			continue
		}
		removed++
	}

	log.Printf("uploads cleanup completed: scanned=%d removed=%d", len(entries), removed)
}
