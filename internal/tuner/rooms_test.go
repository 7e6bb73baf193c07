package tuner

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frequency-social/frequency-api/internal/models"
)

func testArtists(prefix string, n int, selected bool) []models.Artist {
	artists := make([]models.Artist, n)
	for i := range artists {
		artists[i] = models.Artist{
			ID:         fmt.Sprintf("%s-%d", prefix, i),
			Name:       fmt.Sprintf("%s %d", prefix, i),
			IsSelected: selected,
		}
	}
	return artists
}

func TestClassifySimilarity(t *testing.T) {
	tests := []struct {
		value    float64
		expected SimilarityRange
	}{
		{1000, RangeHigh},
		{900, RangeHigh},
		{800, RangeHigh},
		{799.9, RangeMediumHigh},
		{500, RangeMediumHigh},
		{499.9, RangeMedium},
		{300, RangeMedium},
		{299.9, RangeLow},
		{0, RangeLow},
		{-0.1, RangeNegative},
		{-500, RangeNegative},
		{-1000, RangeNegative},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%.1f", tt.value), func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifySimilarity(tt.value))
		})
	}
}

func TestGenerateRoomsHighRange(t *testing.T) {
	selected := testArtists("sel", 2, true)
	related := testArtists("rel", 18, false)

	rooms := GenerateRooms(RoomRequest{
		Selected:     selected,
		Related:      related,
		PrimaryValue: 900,
		RoomCount:    8,
		Mode:         ModeSimilarity,
		Seed:         1,
	})

	require.Len(t, rooms, 8)
	assert.True(t, rooms[0].IsTargetRoom)
	assert.Equal(t, 900.0, rooms[0].Similarity)
	for i := 1; i < len(rooms); i++ {
		assert.False(t, rooms[i].IsTargetRoom)
	}

	// HIGH admits every selected artist with probability 1.0
	names := map[string]bool{}
	for _, a := range rooms[0].Artists {
		names[a.ID] = true
	}
	assert.True(t, names["sel-0"])
	assert.True(t, names["sel-1"])

	for _, room := range rooms {
		assert.Len(t, room.Artists, models.RoomArtistCount)
		r := ClassifySimilarity(room.Similarity)
		assert.Equal(t, RangeHigh, r, "room similarity %v left the range", room.Similarity)
	}
}

func TestGenerateRoomsNegativeExcludesSelected(t *testing.T) {
	selected := testArtists("sel", 3, true)
	related := testArtists("rel", 5, false)

	for seed := int64(0); seed < 20; seed++ {
		rooms := GenerateRooms(RoomRequest{
			Selected:     selected,
			Related:      related,
			PrimaryValue: -500,
			RoomCount:    8,
			Mode:         ModeSimilarity,
			Seed:         seed,
		})
		for _, room := range rooms {
			require.Len(t, room.Artists, models.RoomArtistCount)
			for _, a := range room.Artists {
				assert.False(t, a.IsSelected, "seed %d leaked a selected artist into a negative room", seed)
			}
		}
	}
}

func TestGenerateRoomsPadsShortPools(t *testing.T) {
	// two related artists total: roster pads by cycling
	rooms := GenerateRooms(RoomRequest{
		Related:      testArtists("rel", 2, false),
		PrimaryValue: 350,
		Mode:         ModeSimilarity,
		Seed:         5,
	})
	require.Len(t, rooms, DefaultRoomCount)
	for _, room := range rooms {
		assert.Len(t, room.Artists, models.RoomArtistCount)
	}

	// both pools empty: empty roster, not an error
	empty := GenerateRooms(RoomRequest{PrimaryValue: 350, Mode: ModeSimilarity, Seed: 5})
	require.Len(t, empty, DefaultRoomCount)
	for _, room := range empty {
		assert.Empty(t, room.Artists)
	}
}

func TestGenerateRoomsTargetSecondary(t *testing.T) {
	target := 1326.0
	rooms := GenerateRooms(RoomRequest{
		Related:         testArtists("rel", 18, false),
		PrimaryValue:    650,
		TargetSecondary: &target,
		Mode:            ModeSimilarity,
		Seed:            11,
	})
	assert.Equal(t, 1326, rooms[0].Volume)
	assert.Equal(t, 650.0, rooms[0].Similarity)

	// non-target rooms sort by descending volume
	for i := 2; i < len(rooms); i++ {
		assert.GreaterOrEqual(t, rooms[i-1].Volume, rooms[i].Volume)
	}
}

func TestGenerateRoomsVolumeMode(t *testing.T) {
	rooms := GenerateRooms(RoomRequest{
		Selected:     testArtists("sel", 2, true),
		Related:      testArtists("rel", 18, false),
		PrimaryValue: 1326,
		RoomCount:    4,
		Mode:         ModeVolume,
		Seed:         2,
	})

	require.Len(t, rooms, 4)
	assert.Equal(t, 1326, rooms[0].Volume)
	for _, room := range rooms {
		assert.Len(t, room.Artists, models.RoomArtistCount)
		assert.GreaterOrEqual(t, room.Volume, MinVolume)
		assert.LessOrEqual(t, room.Volume, MaxVolume)
		for _, a := range room.Artists {
			assert.GreaterOrEqual(t, a.Volume, 1)
			assert.LessOrEqual(t, a.Volume, 6)
		}
	}
}

func TestGenerateRoomsDoesNotMutateInputs(t *testing.T) {
	selected := testArtists("sel", 2, true)
	before := selected[0]

	GenerateRooms(RoomRequest{
		Selected:     selected,
		Related:      testArtists("rel", 18, false),
		PrimaryValue: 900,
		Mode:         ModeSimilarity,
		Seed:         8,
	})

	assert.Equal(t, before, selected[0])
	assert.Zero(t, selected[0].Volume, "caller's artist gained room stats")
}
