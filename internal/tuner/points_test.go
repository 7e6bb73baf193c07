package tuner

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointsForBandSpacing(t *testing.T) {
	g := NewPointGenerator(7)

	for band := 0; band <= VolumeBandCount; band++ {
		points := g.PointsForBand(band, ModeVolume)
		require.NotEmpty(t, points, "band %d", band)
		assert.LessOrEqual(t, len(points), 12)

		for i := range points {
			assert.Equal(t, band, points[i].Band)
			assert.GreaterOrEqual(t, points[i].Pos, 0.0)
			assert.Less(t, points[i].Pos, BandWidth(ModeVolume))
			assert.GreaterOrEqual(t, points[i].Freq, 0)
			assert.Less(t, points[i].Freq, 1000)
			for j := i + 1; j < len(points); j++ {
				assert.GreaterOrEqual(t, math.Abs(points[i].Pos-points[j].Pos), MinPointSpacing,
					"band %d points %d/%d too close", band, i, j)
			}
		}
	}
}

func TestPointsForBandDeterministic(t *testing.T) {
	a := NewPointGenerator(99).PointsForBand(2, ModeSimilarity)
	b := NewPointGenerator(99).PointsForBand(2, ModeSimilarity)
	assert.Equal(t, a, b)

	// a different seed scatters differently
	c := NewPointGenerator(100).PointsForBand(2, ModeSimilarity)
	assert.NotEqual(t, a, c)

	// the same band in the other mode is an independent draw
	d := NewPointGenerator(99).PointsForBand(2, ModeVolume)
	assert.NotEqual(t, a, d)
}

func TestAllBandsCoversEveryBand(t *testing.T) {
	all := NewPointGenerator(3).AllBands(ModeSimilarity)
	require.Len(t, all, SimilarityBandCount+1)
	for band, points := range all {
		require.NotEmpty(t, points, "band %d", band)
		// generate-once policy: the precomputed set matches a direct draw
		assert.Equal(t, points, NewPointGenerator(3).PointsForBand(band, ModeSimilarity))
	}
}
