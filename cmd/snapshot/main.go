package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"learnquest/internal/config"
	"learnquest/internal/repository"
	"learnquest/internal/service"
	"learnquest/internal/storage"
)

func main() {
	exportPath := flag.String("export", "", "write a snapshot of the store to this file")
	importPath := flag.String("import", "", "replace the store contents from this snapshot file")
	flag.Parse()

	if (*exportPath == "") == (*importPath == "") {
		fmt.Fprintln(os.Stderr, "usage: snapshot -export FILE | -import FILE")
		os.Exit(2)
	}

	cfg := config.Load()

	store, err := storage.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	snapshots := service.NewSnapshotService(
		repository.NewContentRepository(store),
		repository.NewProgressRepository(store),
		repository.NewUserRepository(store),
	)

	ctx := context.Background()

	if *exportPath != "" {
		if err := snapshots.ExportToFile(ctx, *exportPath); err != nil {
			log.Fatalf("Export failed: %v", err)
		}
		log.Printf("Snapshot written to %s", *exportPath)
		return
	}

	f, err := os.Open(*importPath)
	if err != nil {
		log.Fatalf("Failed to open snapshot file: %v", err)
	}
	defer f.Close()

	if err := snapshots.ImportFromReader(ctx, f); err != nil {
		log.Fatalf("Import failed: %v", err)
	}
	log.Printf("Snapshot imported from %s", *importPath)
}
