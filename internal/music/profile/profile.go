// Package profile maps canonical moods onto Spotify audio-feature targets
// and ranks candidate tracks against them using k-means clustering.
package profile

import (
	"math"
	"slices"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/justestif/go-mood-dj/internal/mood"
)

// Target is the ideal audio-feature point for a mood. All values are in
// [0,1], matching Spotify's feature ranges.
type Target struct {
	Energy       float64
	Valence      float64
	Danceability float64
	Acousticness float64
}

// targets positions each canonical mood in feature space. Energy/valence
// carry most of the signal; acousticness separates the softer moods.
var targets = map[mood.Mood]Target{
	mood.Happy:     {Energy: 0.7, Valence: 0.9, Danceability: 0.7, Acousticness: 0.3},
	mood.Sad:       {Energy: 0.3, Valence: 0.2, Danceability: 0.3, Acousticness: 0.6},
	mood.Angry:     {Energy: 0.9, Valence: 0.3, Danceability: 0.5, Acousticness: 0.1},
	mood.Anxious:   {Energy: 0.3, Valence: 0.5, Danceability: 0.3, Acousticness: 0.7},
	mood.Energetic: {Energy: 0.95, Valence: 0.8, Danceability: 0.85, Acousticness: 0.1},
	mood.Calm:      {Energy: 0.2, Valence: 0.6, Danceability: 0.3, Acousticness: 0.8},
	mood.Tired:     {Energy: 0.15, Valence: 0.5, Danceability: 0.2, Acousticness: 0.8},
	mood.Bored:     {Energy: 0.8, Valence: 0.7, Danceability: 0.8, Acousticness: 0.2},
	mood.Neutral:   {Energy: 0.5, Valence: 0.5, Danceability: 0.5, Acousticness: 0.5},
}

// searchTerms turn a mood into catalog search vocabulary. Anxious and
// tired deliberately search for counteracting music rather than matching
// the mood literally.
var searchTerms = map[mood.Mood]string{
	mood.Happy:     "feel good",
	mood.Sad:       "melancholy",
	mood.Angry:     "heavy intense",
	mood.Anxious:   "soothing calm",
	mood.Energetic: "high energy workout",
	mood.Calm:      "chill relaxing",
	mood.Tired:     "gentle unwind",
	mood.Bored:     "upbeat discovery",
	mood.Neutral:   "popular",
}

// TargetFor returns the feature target for a mood, defaulting to the
// neutral midpoint for anything unknown.
func TargetFor(m mood.Mood) Target {
	if t, ok := targets[m]; ok {
		return t
	}
	return targets[mood.Neutral]
}

// SearchTerm returns catalog search vocabulary for the mood.
func SearchTerm(m mood.Mood) string {
	if s, ok := searchTerms[m]; ok {
		return s
	}
	return searchTerms[mood.Neutral]
}

// Candidate is one track under consideration, reduced to its feature
// coordinates. Tracks without features should not be passed in.
type Candidate struct {
	ID       string
	Features [4]float64 // energy, valence, danceability, acousticness
}

func (c Candidate) coords() clusters.Coordinates {
	return clusters.Coordinates{c.Features[0], c.Features[1], c.Features[2], c.Features[3]}
}

// candidateObservation adapts a Candidate to the clusters.Observation
// interface for k-means.
type candidateObservation struct {
	candidate *Candidate
	coords    clusters.Coordinates
}

func (o candidateObservation) Coordinates() clusters.Coordinates {
	return o.coords
}

func (o candidateObservation) Distance(point clusters.Coordinates) float64 {
	return o.coords.Distance(point)
}

// DefaultClusters is the partition size used when ranking candidates.
const DefaultClusters = 3

// Rank orders candidate IDs by mood fit. Candidates are partitioned with
// k-means; clusters are visited nearest-centroid-first and each cluster's
// members are ordered by their own distance to the target. When there are
// too few candidates to cluster (or k-means fails) everything falls back
// to a plain distance sort.
func Rank(candidates []Candidate, target Target, numClusters int) []string {
	if len(candidates) == 0 {
		return nil
	}
	if numClusters <= 0 {
		numClusters = DefaultClusters
	}

	goal := clusters.Coordinates{target.Energy, target.Valence, target.Danceability, target.Acousticness}

	if len(candidates) < numClusters {
		return sortByDistance(candidates, goal)
	}

	var obs clusters.Observations
	for i := range candidates {
		obs = append(obs, candidateObservation{
			candidate: &candidates[i],
			coords:    candidates[i].coords(),
		})
	}

	km := kmeans.New()
	result, err := km.Partition(obs, numClusters)
	if err != nil {
		return sortByDistance(candidates, goal)
	}

	// Visit clusters nearest the target first.
	type scored struct {
		cluster  clusters.Cluster
		distance float64
	}
	ordered := make([]scored, len(result))
	for i, cl := range result {
		ordered[i] = scored{cluster: cl, distance: cl.Center.Distance(goal)}
	}
	slices.SortStableFunc(ordered, func(a, b scored) int {
		return compareFloat(a.distance, b.distance)
	})

	var out []string
	for _, sc := range ordered {
		members := make([]Candidate, 0, len(sc.cluster.Observations))
		for _, o := range sc.cluster.Observations {
			if co, ok := o.(candidateObservation); ok {
				members = append(members, *co.candidate)
			}
		}
		out = append(out, sortByDistance(members, goal)...)
	}
	return out
}

// sortByDistance returns the candidate IDs ordered by distance to goal.
func sortByDistance(candidates []Candidate, goal clusters.Coordinates) []string {
	sorted := append([]Candidate(nil), candidates...)
	slices.SortStableFunc(sorted, func(a, b Candidate) int {
		return compareFloat(a.coords().Distance(goal), b.coords().Distance(goal))
	})
	out := make([]string, len(sorted))
	for i, c := range sorted {
		out[i] = c.ID
	}
	return out
}

func compareFloat(a, b float64) int {
	switch {
	case a < b || (math.IsNaN(a) && !math.IsNaN(b)):
		return -1
	case a > b || (!math.IsNaN(a) && math.IsNaN(b)):
		return 1
	default:
		return 0
	}
}
