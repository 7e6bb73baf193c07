package tuner

import (
	"sort"

	"github.com/frequency-social/frequency-api/internal/models"
	"github.com/frequency-social/frequency-api/internal/prng"
)

const (
	// MinPointSpacing is the minimum offset distance between two accepted
	// points in the same band, in band units.
	MinPointSpacing = 25.0

	minPointsPerBand = 4
	maxPointsPerBand = 12

	maxFreq = 1000

	bandSeedStride = 0x1F123BB5
	similaritySalt = 0x5DEECE66
)

// PointGenerator produces frequency points for tuner bands. Points for a band
// depend only on (seed, mode, band), so a generator regenerates identical
// markers on every visit: the generate-once policy, with band switches merely
// selecting a different precomputable set.
type PointGenerator struct {
	seed int64
}

func NewPointGenerator(seed int64) *PointGenerator {
	return &PointGenerator{seed: seed}
}

// PointsForBand returns between 1 and 12 points whose offsets within the band
// respect MinPointSpacing. Candidate offsets are rejection-sampled with a
// retry bound of twice the target count, so a crowded draw yields fewer
// points rather than an error or an unbounded loop.
func (g *PointGenerator) PointsForBand(band int, mode Mode) []models.FrequencyPoint {
	r := prng.NewSource(g.seed + int64(band)*bandSeedStride + modeSalt(mode))

	target := r.IntBetween(minPointsPerBand, maxPointsPerBand)
	width := BandWidth(mode)

	offsets := make([]float64, 0, target)
	for attempts := 0; attempts < 2*target && len(offsets) < target; attempts++ {
		candidate := r.Float64() * width
		if tooClose(offsets, candidate) {
			continue
		}
		offsets = append(offsets, candidate)
	}
	sort.Float64s(offsets)

	points := make([]models.FrequencyPoint, 0, len(offsets))
	for _, off := range offsets {
		points = append(points, models.FrequencyPoint{
			Band:           band,
			Pos:            off,
			Freq:           scatterFreq(r, off, width),
			Size:           2 + r.Float64()*4,
			VerticalOffset: r.FloatBetween(-12, 12),
		})
	}
	return points
}

// AllBands generates every band's points up front.
func (g *PointGenerator) AllBands(mode Mode) map[int][]models.FrequencyPoint {
	count := VolumeBandCount
	if mode == ModeSimilarity {
		count = SimilarityBandCount
	}
	all := make(map[int][]models.FrequencyPoint, count+1)
	for band := 0; band <= count; band++ {
		all[band] = g.PointsForBand(band, mode)
	}
	return all
}

func tooClose(accepted []float64, candidate float64) bool {
	for _, off := range accepted {
		d := candidate - off
		if d < 0 {
			d = -d
		}
		if d < MinPointSpacing {
			return true
		}
	}
	return false
}

// scatterFreq maps an offset to a display frequency. The offset skews the
// draw so nearby points read as nearby stations.
func scatterFreq(r *prng.Source, off, width float64) int {
	base := int(off / width * maxFreq)
	jitter := r.Intn(maxFreq / 10)
	f := base + jitter
	if f >= maxFreq {
		f -= maxFreq
	}
	return f
}

func modeSalt(mode Mode) int64 {
	if mode == ModeSimilarity {
		return similaritySalt
	}
	return 0
}
