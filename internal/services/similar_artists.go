package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/frequency-social/frequency-api/internal/logger"
	"github.com/frequency-social/frequency-api/internal/models"
)

// SimilarArtistProvider is an upstream that expands seed artist names into
// similar artists (Last.fm primary, Spotify fallback in production wiring).
type SimilarArtistProvider interface {
	SimilarArtists(ctx context.Context, names []string) ([]models.Artist, error)
}

// CacheMetrics receives cache hit/miss outcomes.
type CacheMetrics interface {
	RecordCacheLookup(hit bool)
}

// DefaultSimilarTTL is the freshness window for a cached seed set.
const DefaultSimilarTTL = time.Hour

// lastfmPlaceholderImage is the hash Last.fm serves for artists without real
// artwork; entries carrying it are filtered out as image-less.
const lastfmPlaceholderImage = "2a96cbd8b46e442fc41c2b86b821562f"

// SimilarArtistService memoizes similar-artist lookups in a single slot: only
// the most recent seed set is retained, and switching seed sets evicts the
// previous entry wholesale.
type SimilarArtistService struct {
	primary  SimilarArtistProvider
	fallback SimilarArtistProvider
	ttl      time.Duration
	now      func() time.Time
	metrics  []CacheMetrics

	mu        sync.Mutex
	key       string
	artists   []models.Artist
	seedNames []string
	fetchedAt time.Time
}

func NewSimilarArtistService(primary, fallback SimilarArtistProvider, ttl time.Duration, metrics ...CacheMetrics) *SimilarArtistService {
	if ttl <= 0 {
		ttl = DefaultSimilarTTL
	}
	return &SimilarArtistService{
		primary:  primary,
		fallback: fallback,
		ttl:      ttl,
		now:      time.Now,
		metrics:  metrics,
	}
}

func (s *SimilarArtistService) recordLookup(hit bool) {
	for _, m := range s.metrics {
		m.RecordCacheLookup(hit)
	}
}

// FetchSimilarArtists returns similar artists for the selected seed set.
// Within the TTL an identical (order-independent) seed set is served from
// cache without an upstream call. On upstream failure the service degrades:
// fallback provider, then stale cache, then an empty slice. Never an error.
func (s *SimilarArtistService) FetchSimilarArtists(ctx context.Context, selected []models.Artist, force bool) []models.Artist {
	key := cacheKey(selected)

	s.mu.Lock()
	if !force && key == s.key && s.key != "" && s.now().Sub(s.fetchedAt) <= s.ttl {
		cached := append([]models.Artist(nil), s.artists...)
		s.mu.Unlock()
		s.recordLookup(true)
		logger.Debug("similar artists served from cache", logger.Fields{"seed_key": key, "count": len(cached)})
		return cached
	}
	s.mu.Unlock()
	s.recordLookup(false)

	names := seedNames(selected)
	artists, err := s.primary.SimilarArtists(ctx, names)
	if err != nil {
		logger.Warn("primary similar-artist provider failed", logger.Fields{"seed_key": key, "error": err.Error()})
		if s.fallback != nil {
			artists, err = s.fallback.SimilarArtists(ctx, names)
		}
	}
	if err != nil {
		logger.Error("similar-artist providers exhausted", err, logger.Fields{"seed_key": key})
		// stale cache beats nothing at all
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.key != "" {
			return append([]models.Artist(nil), s.artists...)
		}
		return []models.Artist{}
	}

	artists = filterUsable(artists)

	// whole-slot replace, not a merge
	s.mu.Lock()
	s.key = key
	s.artists = append([]models.Artist(nil), artists...)
	s.seedNames = names
	s.fetchedAt = s.now()
	s.mu.Unlock()

	return artists
}

// Clear empties the slot; the next fetch always hits upstream.
func (s *SimilarArtistService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key = ""
	s.artists = nil
	s.seedNames = nil
	s.fetchedAt = time.Time{}
}

// cacheKey is order-independent over seed artist names.
func cacheKey(selected []models.Artist) string {
	return strings.Join(seedNames(selected), ",")
}

func seedNames(selected []models.Artist) []string {
	names := make([]string, 0, len(selected))
	for _, a := range selected {
		names = append(names, strings.ToLower(strings.TrimSpace(a.Name)))
	}
	sort.Strings(names)
	return names
}

// filterUsable drops entries without a real image; placeholder artwork reads
// as broken tiles in the selection grid.
func filterUsable(artists []models.Artist) []models.Artist {
	usable := make([]models.Artist, 0, len(artists))
	for _, a := range artists {
		if a.Image == "" || strings.Contains(a.Image, lastfmPlaceholderImage) {
			continue
		}
		usable = append(usable, a)
	}
	return usable
}
