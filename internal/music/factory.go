package music

import (
	"context"
	"fmt"
)

// Credentials holds the provider secrets the factory may need.
type Credentials struct {
	SpotifyID     string
	SpotifySecret string
	YouTubeAPIKey string
}

// NewRecommender builds the recommender for the named provider.
// Returns ErrUnknownProvider for anything other than "spotify" or "youtube".
func NewRecommender(ctx context.Context, provider string, creds Credentials) (Recommender, error) {
	switch provider {
	case ProviderSpotify:
		client, err := NewSpotifyClient(ctx, creds.SpotifyID, creds.SpotifySecret)
		if err != nil {
			return nil, fmt.Errorf("creating Spotify client: %w", err)
		}
		return NewSpotify(client), nil
	case ProviderYouTube:
		return NewYouTube(creds.YouTubeAPIKey)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
	}
}
