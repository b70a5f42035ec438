package config

import (
	"errors"
	"testing"
)

func TestLoad(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/mood_dj_test")
	t.Setenv("ADDR", "")
	t.Setenv("MUSIC_PROVIDER", "")
	t.Setenv("SPOTIFY_ID", "id")
	t.Setenv("SPOTIFY_SECRET", "secret")
	t.Setenv("YOUTUBE_API_KEY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Addr != defaultAddr {
		t.Errorf("Addr = %q, want default %q", cfg.Addr, defaultAddr)
	}
	if cfg.Provider != defaultProvider {
		t.Errorf("Provider = %q, want default %q", cfg.Provider, defaultProvider)
	}
	if cfg.SpotifyID != "id" || cfg.SpotifySecret != "secret" {
		t.Errorf("Spotify credentials not read from environment")
	}
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	if _, err := Load(); !errors.Is(err, ErrMissingDatabaseURL) {
		t.Errorf("Load() error = %v, want ErrMissingDatabaseURL", err)
	}
}

func TestLoad_UnknownProvider(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/mood_dj_test")
	t.Setenv("MUSIC_PROVIDER", "soundcloud")

	if _, err := Load(); !errors.Is(err, ErrUnknownProvider) {
		t.Errorf("Load() error = %v, want ErrUnknownProvider", err)
	}
}

func TestCredentials(t *testing.T) {
	cfg := &Config{SpotifyID: "a", SpotifySecret: "b", YouTubeAPIKey: "c"}
	creds := cfg.Credentials()
	if creds.SpotifyID != "a" || creds.SpotifySecret != "b" || creds.YouTubeAPIKey != "c" {
		t.Errorf("Credentials() = %+v", creds)
	}
}
