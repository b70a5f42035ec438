package music

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/justestif/go-mood-dj/internal/mood"
	"github.com/justestif/go-mood-dj/internal/music/profile"
)

const (
	youtubeBaseURL = "https://www.googleapis.com/youtube/v3/search"
	youtubeTimeout = 10 * time.Second

	// Category 10 is YouTube's music category.
	youtubeMusicCategory = "10"
	youtubeMaxResults    = 25
)

// Sentinel errors.
var (
	// ErrQuotaExceeded is returned when the YouTube API quota is exhausted.
	ErrQuotaExceeded = errors.New("YouTube API quota exceeded")

	// ErrMissingYouTubeKey is returned when no API key is configured.
	ErrMissingYouTubeKey = errors.New("missing YouTube API key")
)

// YouTubeRecommender recommends music videos via the YouTube Data API.
// YouTube exposes no audio features, so results keep the API's relevance
// order and feature fields stay nil.
type YouTubeRecommender struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string

	// In-memory cache: key = "{mood}:{genre}:{limit}"
	cache   map[string][]Track
	cacheMu sync.RWMutex
}

// NewYouTube creates a YouTube recommender with the given API key.
func NewYouTube(apiKey string) (*YouTubeRecommender, error) {
	if apiKey == "" {
		return nil, ErrMissingYouTubeKey
	}
	return &YouTubeRecommender{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: youtubeTimeout,
		},
		baseURL: youtubeBaseURL,
		cache:   make(map[string][]Track),
	}, nil
}

// Recommend searches YouTube's music category for mood-appropriate videos.
// Results are cached in memory per mood/genre/limit combination.
func (r *YouTubeRecommender) Recommend(ctx context.Context, m mood.Mood, limit int, genre string) ([]Track, error) {
	if err := validateRequest(m, limit); err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("%s:%s:%d", m, genre, limit)

	r.cacheMu.RLock()
	if cached, ok := r.cache[cacheKey]; ok {
		r.cacheMu.RUnlock()
		return cached, nil
	}
	r.cacheMu.RUnlock()

	query := profile.SearchTerm(m) + " music"
	if genre != "" {
		query = genre + " " + query
	}

	params := url.Values{
		"part":            {"snippet"},
		"type":            {"video"},
		"videoCategoryId": {youtubeMusicCategory},
		"maxResults":      {strconv.Itoa(min(limit, youtubeMaxResults))},
		"q":               {query},
		"key":             {r.apiKey},
	}

	body, err := r.doRequest(ctx, params)
	if err != nil {
		return nil, err
	}

	var resp youtubeSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing YouTube search response: %w", err)
	}

	tracks := make([]Track, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.ID.VideoID == "" {
			continue
		}
		tracks = append(tracks, Track{
			ID:     item.ID.VideoID,
			Name:   item.Snippet.Title,
			Artist: item.Snippet.ChannelTitle,
			URL:    "https://www.youtube.com/watch?v=" + item.ID.VideoID,
		})
	}
	if len(tracks) > limit {
		tracks = tracks[:limit]
	}

	r.cacheMu.Lock()
	r.cache[cacheKey] = tracks
	r.cacheMu.Unlock()

	return tracks, nil
}

// doRequest performs a single HTTP GET and surfaces API errors.
func (r *YouTubeRecommender) doRequest(ctx context.Context, params url.Values) ([]byte, error) {
	reqURL := r.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr youtubeErrorResponse
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
			if resp.StatusCode == http.StatusForbidden {
				return nil, fmt.Errorf("%w: %s", ErrQuotaExceeded, apiErr.Error.Message)
			}
			return nil, fmt.Errorf("YouTube API error %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("YouTube API returned status %d", resp.StatusCode)
	}

	return body, nil
}

// youtubeSearchResponse is the subset of the search payload we need.
type youtubeSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
		} `json:"snippet"`
	} `json:"items"`
}

type youtubeErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
