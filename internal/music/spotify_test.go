package music

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/zmb3/spotify/v2"

	"github.com/justestif/go-mood-dj/internal/mood"
)

// fakeSpotifyAPI implements spotifyAPI for tests.
type fakeSpotifyAPI struct {
	lastQuery string
	tracks    []spotify.FullTrack
	features  []*spotify.AudioFeatures
	searchErr error
}

func (f *fakeSpotifyAPI) Search(ctx context.Context, query string, t spotify.SearchType, opts ...spotify.RequestOption) (*spotify.SearchResult, error) {
	f.lastQuery = query
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return &spotify.SearchResult{
		Tracks: &spotify.FullTrackPage{Tracks: f.tracks},
	}, nil
}

func (f *fakeSpotifyAPI) GetAudioFeatures(ctx context.Context, ids ...spotify.ID) ([]*spotify.AudioFeatures, error) {
	return f.features, nil
}

func fullTrack(id, name, artist string) spotify.FullTrack {
	return spotify.FullTrack{
		SimpleTrack: spotify.SimpleTrack{
			ID:      spotify.ID(id),
			Name:    name,
			Artists: []spotify.SimpleArtist{{Name: artist}},
			ExternalURLs: map[string]string{
				"spotify": "https://open.spotify.com/track/" + id,
			},
		},
		Album: spotify.SimpleAlbum{Name: name + " (Album)"},
	}
}

func audioFeatures(id string, energy, valence, danceability, acousticness float32) *spotify.AudioFeatures {
	return &spotify.AudioFeatures{
		ID:           spotify.ID(id),
		Energy:       energy,
		Valence:      valence,
		Danceability: danceability,
		Acousticness: acousticness,
	}
}

func TestSpotifyRecommend_RanksByMoodFit(t *testing.T) {
	api := &fakeSpotifyAPI{
		tracks: []spotify.FullTrack{
			fullTrack("metal", "Wall of Noise", "Loud Band"),
			fullTrack("ambient", "Still Water", "Quiet Trio"),
		},
		features: []*spotify.AudioFeatures{
			audioFeatures("metal", 0.95, 0.3, 0.5, 0.05),
			audioFeatures("ambient", 0.2, 0.6, 0.3, 0.85),
		},
	}
	rec := &SpotifyRecommender{api: api}

	tracks, err := rec.Recommend(context.Background(), mood.Calm, 2, "")
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("Recommend() got %d tracks, want 2", len(tracks))
	}
	if tracks[0].ID != "ambient" {
		t.Errorf("first track = %q, want ambient track first for calm mood", tracks[0].ID)
	}
	if tracks[0].Energy == nil || *tracks[0].Energy != 0.2 {
		t.Errorf("first track energy = %v, want 0.2", tracks[0].Energy)
	}
	if tracks[0].URL != "https://open.spotify.com/track/ambient" {
		t.Errorf("first track URL = %q", tracks[0].URL)
	}
}

func TestSpotifyRecommend_TruncatesToLimit(t *testing.T) {
	api := &fakeSpotifyAPI{
		tracks: []spotify.FullTrack{
			fullTrack("a", "One", "Artist"),
			fullTrack("b", "Two", "Artist"),
			fullTrack("c", "Three", "Artist"),
		},
		features: []*spotify.AudioFeatures{
			audioFeatures("a", 0.7, 0.9, 0.7, 0.3),
			audioFeatures("b", 0.6, 0.8, 0.6, 0.4),
			audioFeatures("c", 0.1, 0.1, 0.1, 0.9),
		},
	}
	rec := &SpotifyRecommender{api: api}

	tracks, err := rec.Recommend(context.Background(), mood.Happy, 2, "")
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(tracks) != 2 {
		t.Errorf("Recommend() got %d tracks, want 2", len(tracks))
	}
}

func TestSpotifyRecommend_GenreInQuery(t *testing.T) {
	api := &fakeSpotifyAPI{}
	rec := &SpotifyRecommender{api: api}

	if _, err := rec.Recommend(context.Background(), mood.Happy, 3, "Jazz"); err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if !strings.Contains(api.lastQuery, `genre:"jazz"`) {
		t.Errorf("query %q does not carry the genre filter", api.lastQuery)
	}
}

func TestSpotifyRecommend_FeaturelessTracksGoLast(t *testing.T) {
	api := &fakeSpotifyAPI{
		tracks: []spotify.FullTrack{
			fullTrack("nofeat", "Mystery", "Artist"),
			fullTrack("scored", "Known", "Artist"),
		},
		features: []*spotify.AudioFeatures{
			nil, // Spotify returns nil for tracks without features
			audioFeatures("scored", 0.5, 0.5, 0.5, 0.5),
		},
	}
	rec := &SpotifyRecommender{api: api}

	tracks, err := rec.Recommend(context.Background(), mood.Neutral, 5, "")
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("Recommend() got %d tracks, want 2", len(tracks))
	}
	if tracks[0].ID != "scored" || tracks[1].ID != "nofeat" {
		t.Errorf("order = [%s %s], want scored before nofeat", tracks[0].ID, tracks[1].ID)
	}
}

func TestSpotifyRecommend_EmptyResults(t *testing.T) {
	rec := &SpotifyRecommender{api: &fakeSpotifyAPI{}}

	tracks, err := rec.Recommend(context.Background(), mood.Bored, 5, "")
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(tracks) != 0 {
		t.Errorf("Recommend() got %d tracks, want 0", len(tracks))
	}
}

func TestSpotifyRecommend_SearchError(t *testing.T) {
	wantErr := errors.New("boom")
	rec := &SpotifyRecommender{api: &fakeSpotifyAPI{searchErr: wantErr}}

	if _, err := rec.Recommend(context.Background(), mood.Sad, 5, ""); !errors.Is(err, wantErr) {
		t.Errorf("Recommend() error = %v, want wrapped %v", err, wantErr)
	}
}

func TestSpotifyRecommend_Validation(t *testing.T) {
	rec := &SpotifyRecommender{api: &fakeSpotifyAPI{}}

	if _, err := rec.Recommend(context.Background(), mood.Mood("grumpy"), 5, ""); !errors.Is(err, ErrInvalidMood) {
		t.Errorf("invalid mood error = %v, want ErrInvalidMood", err)
	}
	if _, err := rec.Recommend(context.Background(), mood.Happy, -1, ""); !errors.Is(err, ErrInvalidLimit) {
		t.Errorf("negative limit error = %v, want ErrInvalidLimit", err)
	}
}

func TestNewRecommender_UnknownProvider(t *testing.T) {
	if _, err := NewRecommender(context.Background(), "soundcloud", Credentials{}); !errors.Is(err, ErrUnknownProvider) {
		t.Errorf("NewRecommender(soundcloud) error = %v, want ErrUnknownProvider", err)
	}
}

func TestNewRecommender_MissingCredentials(t *testing.T) {
	if _, err := NewRecommender(context.Background(), ProviderYouTube, Credentials{}); !errors.Is(err, ErrMissingYouTubeKey) {
		t.Errorf("youtube without key error = %v, want ErrMissingYouTubeKey", err)
	}
	if _, err := NewRecommender(context.Background(), ProviderSpotify, Credentials{}); !errors.Is(err, ErrMissingSpotifyCredentials) {
		t.Errorf("spotify without creds error = %v, want ErrMissingSpotifyCredentials", err)
	}
}
