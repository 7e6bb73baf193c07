package tuner

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/frequency-social/frequency-api/internal/models"
	"github.com/frequency-social/frequency-api/internal/prng"
)

// SimilarityRange buckets the similarity axis into the five policy ranges
// that drive room synthesis.
type SimilarityRange string

const (
	RangeHigh       SimilarityRange = "HIGH"        // [800, 1000]
	RangeMediumHigh SimilarityRange = "MEDIUM_HIGH" // [500, 799]
	RangeMedium     SimilarityRange = "MEDIUM"      // [300, 499]
	RangeLow        SimilarityRange = "LOW"         // [0, 299]
	RangeNegative   SimilarityRange = "NEGATIVE"    // [-1000, -1]
)

// DefaultRoomCount is used when a request does not say how many rooms it wants.
const DefaultRoomCount = 8

// statPolicy describes how artist stats are rolled within a range:
// volume bars are base..base+jitter (capped at 6), pick counts likewise.
type statPolicy struct {
	baseVolume   int
	volumeJitter int
	baseCount    int
	countJitter  int
}

// rangePolicy is the per-range room synthesis policy. Higher similarity
// favors the user's own picks more heavily and with stronger stats; the
// negative range excludes selected artists entirely.
type rangePolicy struct {
	selectedProbability float64
	maxVisibleSelected  int
	selected            statPolicy
	related             statPolicy
	minListeners        int
	maxListeners        int
}

var rangePolicies = map[SimilarityRange]rangePolicy{
	RangeHigh: {
		selectedProbability: 1.0,
		maxVisibleSelected:  6,
		selected:            statPolicy{baseVolume: 5, volumeJitter: 1, baseCount: 40, countJitter: 30},
		related:             statPolicy{baseVolume: 3, volumeJitter: 2, baseCount: 12, countJitter: 18},
		minListeners:        120,
		maxListeners:        600,
	},
	RangeMediumHigh: {
		selectedProbability: 0.8,
		maxVisibleSelected:  4,
		selected:            statPolicy{baseVolume: 4, volumeJitter: 2, baseCount: 25, countJitter: 20},
		related:             statPolicy{baseVolume: 3, volumeJitter: 2, baseCount: 10, countJitter: 15},
		minListeners:        80,
		maxListeners:        420,
	},
	RangeMedium: {
		selectedProbability: 0.5,
		maxVisibleSelected:  3,
		selected:            statPolicy{baseVolume: 3, volumeJitter: 2, baseCount: 15, countJitter: 15},
		related:             statPolicy{baseVolume: 2, volumeJitter: 3, baseCount: 8, countJitter: 12},
		minListeners:        40,
		maxListeners:        300,
	},
	RangeLow: {
		selectedProbability: 0.25,
		maxVisibleSelected:  2,
		selected:            statPolicy{baseVolume: 2, volumeJitter: 2, baseCount: 8, countJitter: 10},
		related:             statPolicy{baseVolume: 2, volumeJitter: 3, baseCount: 6, countJitter: 10},
		minListeners:        20,
		maxListeners:        200,
	},
	RangeNegative: {
		selectedProbability: 0,
		maxVisibleSelected:  0,
		related:             statPolicy{baseVolume: 1, volumeJitter: 3, baseCount: 3, countJitter: 8},
		minListeners:        10,
		maxListeners:        120,
	},
}

// similarityBounds are the inclusive edges each range's synthetic
// similarities must stay inside.
var similarityBounds = map[SimilarityRange][2]float64{
	RangeHigh:       {800, 1000},
	RangeMediumHigh: {500, 799},
	RangeMedium:     {300, 499},
	RangeLow:        {0, 299},
	RangeNegative:   {-1000, -1},
}

// ClassifySimilarity maps a similarity value to its policy range.
func ClassifySimilarity(s float64) SimilarityRange {
	s = ClampSimilarity(s)
	switch {
	case s >= 800:
		return RangeHigh
	case s >= 500:
		return RangeMediumHigh
	case s >= 300:
		return RangeMedium
	case s >= 0:
		return RangeLow
	default:
		return RangeNegative
	}
}

// RoomRequest describes one room-generation call. Selected and Related are
// read-only inputs; the generator copies artists and never mutates originals.
type RoomRequest struct {
	Selected        []models.Artist
	Related         []models.Artist
	PrimaryValue    float64
	RoomCount       int
	TargetSecondary *float64
	Mode            Mode
	Seed            int64
}

// GenerateRooms synthesizes discoverable rooms near the request's primary
// value. The first room is the target room and pins the caller's coordinates;
// the rest are sorted by descending secondary metric. Always returns a slice,
// never an error: a shortfall of candidate artists pads by cycling whichever
// pool is non-empty, and only two empty pools produce an empty roster.
func GenerateRooms(req RoomRequest) []models.Room {
	count := req.RoomCount
	if count <= 0 {
		count = DefaultRoomCount
	}
	r := prng.NewSource(req.Seed)

	rooms := make([]models.Room, 0, count)
	for i := 0; i < count; i++ {
		rooms = append(rooms, generateRoom(req, r, i == 0))
	}

	// Target room stays first; the rest order by the secondary axis.
	sort.SliceStable(rooms[1:], func(a, b int) bool {
		if req.Mode == ModeSimilarity {
			return rooms[a+1].Volume > rooms[b+1].Volume
		}
		return rooms[a+1].Similarity > rooms[b+1].Similarity
	})
	return rooms
}

func generateRoom(req RoomRequest, r *prng.Source, isTarget bool) models.Room {
	var (
		artists []models.Artist
		policy  rangePolicy
	)
	if req.Mode == ModeSimilarity {
		policy = rangePolicies[ClassifySimilarity(req.PrimaryValue)]
		artists = assembleArtists(req, policy, r)
	} else {
		policy = volumeModePolicy
		artists = assembleUniform(req, r)
	}

	volume, similarity := roomCoordinates(req, r, isTarget)

	room := models.Room{
		ID:              uuid.NewString(),
		Name:            roomName(artists, r),
		Volume:          volume,
		Similarity:      similarity,
		Artists:         artists,
		Listeners:       r.IntBetween(policy.minListeners, policy.maxListeners),
		IsTargetRoom:    isTarget,
		Recommendations: r.Intn(60),
	}
	room.Minutes = room.Listeners * r.IntBetween(2, 9)
	return room
}

// volumeModePolicy backs the simpler uniform-stat volume mode; only the
// listener bounds are consulted.
var volumeModePolicy = rangePolicy{minListeners: 20, maxListeners: 400}

// assembleArtists builds the fixed 18-slot roster for similarity mode:
// selected artists admitted per policy probability up to the visibility cap,
// the remainder filled from related, padded by cycling the non-empty pool.
func assembleArtists(req RoomRequest, policy rangePolicy, r *prng.Source) []models.Artist {
	roster := make([]models.Artist, 0, models.RoomArtistCount)

	visible := 0
	for _, a := range req.Selected {
		if visible >= policy.maxVisibleSelected || len(roster) >= models.RoomArtistCount {
			break
		}
		if r.Float64() >= policy.selectedProbability {
			continue
		}
		roster = append(roster, withStats(a, policy.selected, r))
		visible++
	}

	for _, a := range req.Related {
		if len(roster) >= models.RoomArtistCount {
			break
		}
		roster = append(roster, withStats(a, policy.related, r))
	}

	return padRoster(roster, req, policy, r)
}

// assembleUniform is the volume-mode roster: both pools, uniform stats.
func assembleUniform(req RoomRequest, r *prng.Source) []models.Artist {
	roster := make([]models.Artist, 0, models.RoomArtistCount)
	uniform := statPolicy{baseVolume: 1, volumeJitter: 5, baseCount: 0, countJitter: 50}

	for _, a := range req.Selected {
		if len(roster) >= models.RoomArtistCount {
			break
		}
		roster = append(roster, withStats(a, uniform, r))
	}
	for _, a := range req.Related {
		if len(roster) >= models.RoomArtistCount {
			break
		}
		roster = append(roster, withStats(a, uniform, r))
	}

	return padRoster(roster, req, rangePolicy{related: uniform, selected: uniform, maxVisibleSelected: len(req.Selected)}, r)
}

// padRoster cycles the non-empty candidate pool until the roster reaches 18
// entries. Selected artists are reused only where the policy admits them at
// all, so the negative range stays selected-free even when padding.
func padRoster(roster []models.Artist, req RoomRequest, policy rangePolicy, r *prng.Source) []models.Artist {
	pool := req.Related
	stats := policy.related
	if len(pool) == 0 && policy.maxVisibleSelected > 0 {
		pool = req.Selected
		stats = policy.selected
	}
	if len(pool) == 0 {
		return roster
	}
	for i := 0; len(roster) < models.RoomArtistCount; i++ {
		roster = append(roster, withStats(pool[i%len(pool)], stats, r))
	}
	return roster
}

// withStats copies an artist and rolls its per-room stats.
func withStats(a models.Artist, stats statPolicy, r *prng.Source) models.Artist {
	c := a
	c.Volume = ClampInt(stats.baseVolume+r.Intn(stats.volumeJitter+1), 1, 6)
	c.Count = stats.baseCount + r.Intn(stats.countJitter+1)
	return c
}

// roomCoordinates synthesizes a range-consistent (volume, similarity) display
// pair. The target room pins the caller's values exactly.
func roomCoordinates(req RoomRequest, r *prng.Source, isTarget bool) (int, float64) {
	if req.Mode == ModeSimilarity {
		similarity := ClampSimilarity(req.PrimaryValue)
		if !isTarget {
			bounds := similarityBounds[ClassifySimilarity(req.PrimaryValue)]
			similarity = SnapSimilarity(Clamp(req.PrimaryValue+r.FloatBetween(-60, 60), bounds[0], bounds[1]))
		}
		volume := r.IntBetween(MinVolume, MaxVolume)
		if isTarget && req.TargetSecondary != nil {
			volume = ClampVolume(int(*req.TargetSecondary))
		}
		return volume, similarity
	}

	volume := ClampVolume(int(req.PrimaryValue))
	if !isTarget {
		volume = ClampVolume(volume + r.IntBetween(-150, 150))
	}
	similarity := SnapSimilarity(r.FloatBetween(MinSimilarity, MaxSimilarity))
	if isTarget && req.TargetSecondary != nil {
		similarity = ClampSimilarity(*req.TargetSecondary)
	}
	return volume, similarity
}

var roomNameFormats = []string{
	"%s Radio",
	"The %s Room",
	"%s & Friends",
	"Deep Cuts: %s",
	"%s After Hours",
}

func roomName(artists []models.Artist, r *prng.Source) string {
	if len(artists) == 0 {
		return "Open Frequency"
	}
	anchor := artists[r.Intn(len(artists))]
	return fmt.Sprintf(roomNameFormats[r.Intn(len(roomNameFormats))], anchor.Name)
}
