// Package music defines the recommendation collaborator contract and its
// provider adapters. The dialogue engine hands over a mood, a limit and an
// optional genre hint; the adapter returns at most limit tracks ordered by
// how well they fit the mood.
package music

import (
	"context"
	"errors"
	"fmt"

	"github.com/justestif/go-mood-dj/internal/mood"
)

// Common errors.
var (
	// ErrUnknownProvider is returned by the factory for a provider name it
	// does not recognize.
	ErrUnknownProvider = errors.New("unknown music provider")

	// ErrInvalidMood is returned when the requested mood is not canonical.
	ErrInvalidMood = errors.New("invalid mood")

	// ErrInvalidLimit is returned for a non-positive track limit.
	ErrInvalidLimit = errors.New("limit must be positive")
)

// Track is one recommended track. Audio feature fields are nil when the
// provider does not expose them (YouTube has none).
type Track struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Artist       string   `json:"artist"`
	Album        string   `json:"album,omitempty"`
	URL          string   `json:"url,omitempty"`
	Energy       *float32 `json:"energy,omitempty"`
	Valence      *float32 `json:"valence,omitempty"`
	Danceability *float32 `json:"danceability,omitempty"`
	Acousticness *float32 `json:"acousticness,omitempty"`
}

// Recommender is the recommendation collaborator: mood in, tracks out.
// Implementations must return at most limit tracks.
type Recommender interface {
	Recommend(ctx context.Context, m mood.Mood, limit int, genre string) ([]Track, error)
}

// Provider names accepted by the factory.
const (
	ProviderSpotify = "spotify"
	ProviderYouTube = "youtube"
)

// validateRequest applies the shared contract checks for all providers.
func validateRequest(m mood.Mood, limit int) error {
	if !mood.Valid(m) {
		return fmt.Errorf("%w: %q", ErrInvalidMood, m)
	}
	if limit <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}
	return nil
}
