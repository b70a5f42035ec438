package music

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/justestif/go-mood-dj/internal/mood"
	"github.com/justestif/go-mood-dj/internal/music/profile"
)

const (
	// Spotify caps search results at 50 per page; we over-fetch so the
	// ranker has a real candidate pool to work with.
	maxSearchResults    = 50
	candidateMultiplier = 3
)

// ErrMissingSpotifyCredentials is returned when client credentials are not configured.
var ErrMissingSpotifyCredentials = errors.New("missing Spotify client ID or secret")

// spotifyAPI is the slice of the Spotify client the recommender needs.
// Satisfied by *spotify.Client; tests substitute a fake.
type spotifyAPI interface {
	Search(ctx context.Context, query string, t spotify.SearchType, opts ...spotify.RequestOption) (*spotify.SearchResult, error)
	GetAudioFeatures(ctx context.Context, ids ...spotify.ID) ([]*spotify.AudioFeatures, error)
}

// SpotifyRecommender recommends tracks by searching the Spotify catalog
// and ranking candidates against mood audio-feature targets.
type SpotifyRecommender struct {
	api spotifyAPI
}

// NewSpotify creates a recommender on top of an authenticated Spotify client.
func NewSpotify(api *spotify.Client) *SpotifyRecommender {
	return &SpotifyRecommender{api: api}
}

// NewSpotifyClient builds a Spotify client from client credentials.
// Catalog search needs no user authorization, so the client-credentials
// flow is sufficient.
func NewSpotifyClient(ctx context.Context, clientID, clientSecret string) (*spotify.Client, error) {
	if clientID == "" || clientSecret == "" {
		return nil, ErrMissingSpotifyCredentials
	}

	cfg := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}

	token, err := cfg.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("requesting Spotify token: %w", err)
	}

	httpClient := spotifyauth.New().Client(ctx, token)
	return spotify.New(httpClient, spotify.WithRetry(true)), nil
}

// Recommend searches the catalog for mood-appropriate tracks and returns
// the best limit matches, ordered by audio-feature fit.
func (r *SpotifyRecommender) Recommend(ctx context.Context, m mood.Mood, limit int, genre string) ([]Track, error) {
	if err := validateRequest(m, limit); err != nil {
		return nil, err
	}

	query := profile.SearchTerm(m)
	if genre != "" {
		query = fmt.Sprintf("%s genre:%q", query, strings.ToLower(genre))
	}

	fetch := min(limit*candidateMultiplier, maxSearchResults)

	result, err := r.api.Search(ctx, query, spotify.SearchTypeTrack, spotify.Limit(fetch))
	if err != nil {
		return nil, fmt.Errorf("searching Spotify: %w", err)
	}
	if result.Tracks == nil || len(result.Tracks.Tracks) == 0 {
		return []Track{}, nil
	}

	tracks := make([]Track, 0, len(result.Tracks.Tracks))
	ids := make([]spotify.ID, 0, len(result.Tracks.Tracks))
	for _, ft := range result.Tracks.Tracks {
		tracks = append(tracks, fullTrackToTrack(ft))
		ids = append(ids, ft.ID)
	}

	features, err := r.api.GetAudioFeatures(ctx, ids...)
	if err != nil {
		return nil, fmt.Errorf("fetching audio features: %w", err)
	}

	byID := make(map[string]*Track, len(tracks))
	for i := range tracks {
		byID[tracks[i].ID] = &tracks[i]
	}
	for _, f := range features {
		if f == nil {
			continue // track has no audio features
		}
		if t, ok := byID[f.ID.String()]; ok {
			applyAudioFeatures(t, f)
		}
	}

	ranked := rankByMood(tracks, m)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// rankByMood orders tracks by audio-feature fit. Tracks without features
// keep their search order and go last.
func rankByMood(tracks []Track, m mood.Mood) []Track {
	byID := make(map[string]Track, len(tracks))
	var candidates []profile.Candidate
	var featureless []Track

	for _, t := range tracks {
		byID[t.ID] = t
		if t.Energy == nil || t.Valence == nil || t.Danceability == nil || t.Acousticness == nil {
			featureless = append(featureless, t)
			continue
		}
		candidates = append(candidates, profile.Candidate{
			ID: t.ID,
			Features: [4]float64{
				float64(*t.Energy),
				float64(*t.Valence),
				float64(*t.Danceability),
				float64(*t.Acousticness),
			},
		})
	}

	ordered := profile.Rank(candidates, profile.TargetFor(m), profile.DefaultClusters)

	out := make([]Track, 0, len(tracks))
	for _, id := range ordered {
		out = append(out, byID[id])
	}
	return append(out, featureless...)
}

// fullTrackToTrack converts a Spotify API track to the domain type.
func fullTrackToTrack(ft spotify.FullTrack) Track {
	artist := ""
	if len(ft.Artists) > 0 {
		artist = ft.Artists[0].Name
	}
	return Track{
		ID:     ft.ID.String(),
		Name:   ft.Name,
		Artist: artist,
		Album:  ft.Album.Name,
		URL:    ft.ExternalURLs["spotify"],
	}
}

// applyAudioFeatures copies feature values onto a track.
func applyAudioFeatures(t *Track, f *spotify.AudioFeatures) {
	t.Energy = &f.Energy
	t.Valence = &f.Valence
	t.Danceability = &f.Danceability
	t.Acousticness = &f.Acousticness
}
