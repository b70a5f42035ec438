// Package config loads application configuration from the environment,
// with optional .env file support for local development.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/justestif/go-mood-dj/internal/music"
)

const (
	defaultAddr     = ":8080"
	defaultProvider = music.ProviderSpotify
)

// Sentinel errors.
var (
	// ErrMissingDatabaseURL is returned when DATABASE_URL is not set.
	ErrMissingDatabaseURL = errors.New("missing DATABASE_URL environment variable")

	// ErrUnknownProvider is returned for an unrecognized MUSIC_PROVIDER value.
	ErrUnknownProvider = errors.New("unknown MUSIC_PROVIDER")
)

// Config holds all runtime configuration.
type Config struct {
	Addr        string
	DatabaseURL string

	// Provider selects the recommendation backend: "spotify" or "youtube".
	Provider      string
	SpotifyID     string
	SpotifySecret string
	YouTubeAPIKey string
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = defaultAddr
	}

	provider := os.Getenv("MUSIC_PROVIDER")
	if provider == "" {
		provider = defaultProvider
	}
	if provider != music.ProviderSpotify && provider != music.ProviderYouTube {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
	}

	return &Config{
		Addr:          addr,
		DatabaseURL:   databaseURL,
		Provider:      provider,
		SpotifyID:     os.Getenv("SPOTIFY_ID"),
		SpotifySecret: os.Getenv("SPOTIFY_SECRET"),
		YouTubeAPIKey: os.Getenv("YOUTUBE_API_KEY"),
	}, nil
}

// Credentials returns the provider secrets in the form the music factory expects.
func (c *Config) Credentials() music.Credentials {
	return music.Credentials{
		SpotifyID:     c.SpotifyID,
		SpotifySecret: c.SpotifySecret,
		YouTubeAPIKey: c.YouTubeAPIKey,
	}
}
