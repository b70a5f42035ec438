// Command mood-dj runs the mood DJ conversation service.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/justestif/go-mood-dj/internal/config"
	"github.com/justestif/go-mood-dj/internal/db"
	"github.com/justestif/go-mood-dj/internal/music"
	"github.com/justestif/go-mood-dj/internal/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	ctx := context.Background()

	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()

	recommender, err := music.NewRecommender(ctx, cfg.Provider, cfg.Credentials())
	if err != nil {
		return fmt.Errorf("creating %s recommender: %w", cfg.Provider, err)
	}

	log.Printf("Using %s as the recommendation provider", cfg.Provider)

	server := web.NewServer(web.ServerConfig{
		Addr:        cfg.Addr,
		Provider:    cfg.Provider,
		Recommender: recommender,
		Database:    database,
	})

	return server.Run()
}
