package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"online-bookstore/internal/config"
	"online-bookstore/internal/db"
	"online-bookstore/internal/importer"
	bookrepo "online-bookstore/internal/repository/book"
	categoryrepo "online-bookstore/internal/repository/category"
)

func main() {
	var (
		filePath string
		workers  int
	)
	flag.StringVar(&filePath, "file", "", "Path to JSON book catalog")
	flag.IntVar(&workers, "workers", 4, "Concurrent book inserts")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		log.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	f, err := os.Open(filePath)
	if err != nil {
		log.Fatalf("open file: %v", err)
	}
	defer f.Close()

	imp := importer.NewJSONImporter(
		bookrepo.NewPostgres(pool, nil),
		categoryrepo.NewPostgres(pool),
		workers,
	)

	start := time.Now()
	count, err := imp.Run(ctx, f)
	if err != nil {
		log.Fatalf("import failed after %d books: %v", count, err)
	}

	fmt.Printf("Imported %d books in %s\n", count, time.Since(start).Truncate(time.Millisecond))
}
