package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/vulnscope/vulnscope/internal/adapters/seed"
	"github.com/vulnscope/vulnscope/internal/adapters/storage"
)

func main() {
	seedFiles := flag.String("seed-file", "./configs/vuln_seed.json", "Path to vulnerability seed JSON file(s), comma separated")
	dbPath := flag.String("db-path", "./data/vulnscope.db", "Path to vulnerability database")
	flag.Parse()

	log.Println("=== Vulnerability Seed Loader ===")
	log.Printf("Seed file(s): %s", *seedFiles)
	log.Printf("Database: %s", *dbPath)

	// Ensure data directory exists
	if err := os.MkdirAll(filepath.Dir(*dbPath), 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	// Create store
	store, err := storage.NewSQLiteAdapter(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	// Load seed data
	loader := seed.NewLoader(store)
	ctx := context.Background()

	var files []string
	for _, f := range strings.Split(*seedFiles, ",") {
		if trimmed := strings.TrimSpace(f); trimmed != "" {
			files = append(files, trimmed)
		}
	}

	loaded, err := loader.LoadFromMultipleFiles(ctx, files)
	if err != nil {
		log.Fatalf("Failed to load seed data: %v", err)
	}
	log.Printf("Imported %d records", loaded)

	// Show stats
	count, _ := store.TotalCount(ctx)
	log.Printf("✓ Database now contains %d vulnerabilities", count)
}
