package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/frequency-social/frequency-api/internal/logger"
	"github.com/frequency-social/frequency-api/internal/metrics"
	"github.com/frequency-social/frequency-api/internal/models"
	"github.com/frequency-social/frequency-api/internal/tuner"
)

// TunerHandler serves the radio-tuner surface: parameter state, frequency
// points and room generation.
type TunerHandler struct {
	sentryMetrics *metrics.SentryMetrics
	cloudwatch    *metrics.Client
}

func NewTunerHandler(cloudwatch *metrics.Client) *TunerHandler {
	return &TunerHandler{
		sentryMetrics: metrics.NewSentryMetrics(),
		cloudwatch:    cloudwatch,
	}
}

// State clamps and snaps raw parameter values and reports band geometry.
// Out-of-range input is clamped, never rejected.
func (h *TunerHandler) State(c *gin.Context) {
	rawVolume, _ := strconv.ParseFloat(c.DefaultQuery("volume", "0"), 64)
	rawSimilarity, _ := strconv.ParseFloat(c.DefaultQuery("similarity", "0"), 64)

	volume := tuner.SnapVolume(rawVolume)
	similarity := tuner.SnapSimilarity(rawSimilarity)

	c.JSON(http.StatusOK, gin.H{
		"volume":                  volume,
		"similarity":              similarity,
		"volume_band":             tuner.VolumeBand(volume),
		"similarity_band":         tuner.SimilarityBand(similarity),
		"volume_band_percent":     tuner.BandPercent(float64(volume), tuner.ModeVolume),
		"similarity_band_percent": tuner.BandPercent(similarity, tuner.ModeSimilarity),
	})
}

// Frequencies returns the generated points for one band. Identical
// (seed, mode, band) queries always return identical points.
func (h *TunerHandler) Frequencies(c *gin.Context) {
	mode, ok := parseMode(c.DefaultQuery("mode", string(tuner.ModeVolume)))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mode must be volume or similarity"})
		return
	}

	band, err := strconv.Atoi(c.DefaultQuery("band", "0"))
	if err != nil || band < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "band must be a non-negative integer"})
		return
	}
	maxBand := tuner.VolumeBandCount
	if mode == tuner.ModeSimilarity {
		maxBand = tuner.SimilarityBandCount
	}
	if band > maxBand {
		c.JSON(http.StatusBadRequest, gin.H{"error": "band out of range"})
		return
	}

	seed, _ := strconv.ParseInt(c.DefaultQuery("seed", "1"), 10, 64)
	points := tuner.NewPointGenerator(seed).PointsForBand(band, mode)

	c.JSON(http.StatusOK, gin.H{
		"mode":   mode,
		"band":   band,
		"points": points,
	})
}

// RoomsRequest is the generation payload for POST /tuner/rooms.
type RoomsRequest struct {
	Selected        []models.Artist `json:"selected"`
	Related         []models.Artist `json:"related"`
	PrimaryValue    float64         `json:"primary_value"`
	RoomCount       int             `json:"room_count"`
	TargetSecondary *float64        `json:"target_secondary"`
	Mode            string          `json:"mode"`
	Seed            int64           `json:"seed"`
}

// Rooms synthesizes discoverable rooms around the requested tuner value.
func (h *TunerHandler) Rooms(c *gin.Context) {
	var req RoomsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mode, ok := parseMode(req.Mode)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mode must be volume or similarity"})
		return
	}

	// malformed artists are rejected at the boundary, never generated from
	for _, a := range append(append([]models.Artist{}, req.Selected...), req.Related...) {
		if err := a.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	start := time.Now()
	rooms := tuner.GenerateRooms(tuner.RoomRequest{
		Selected:        req.Selected,
		Related:         req.Related,
		PrimaryValue:    req.PrimaryValue,
		RoomCount:       req.RoomCount,
		TargetSecondary: req.TargetSecondary,
		Mode:            mode,
		Seed:            req.Seed,
	})
	duration := time.Since(start)

	h.sentryMetrics.RecordRoomGeneration(c.Request.Context(), string(mode), len(rooms), duration)
	if h.cloudwatch != nil {
		h.cloudwatch.RecordRoomGeneration(string(mode), len(rooms), duration)
	}
	fields := logger.WithContext(c)
	fields["mode"] = string(mode)
	fields["count"] = len(rooms)
	logger.Debug("rooms generated", fields)

	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

func parseMode(raw string) (tuner.Mode, bool) {
	switch tuner.Mode(raw) {
	case tuner.ModeVolume, "":
		return tuner.ModeVolume, true
	case tuner.ModeSimilarity:
		return tuner.ModeSimilarity, true
	default:
		return "", false
	}
}
