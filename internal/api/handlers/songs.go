package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/frequency-social/frequency-api/internal/logger"
	"github.com/frequency-social/frequency-api/internal/metrics"
	"github.com/frequency-social/frequency-api/internal/models"
)

// SongSearcher is the song search collaborator (iTunes).
type SongSearcher interface {
	SearchSongs(ctx context.Context, term string, limit int) ([]models.Song, error)
}

// SongsHandler proxies song search for preview playback.
type SongsHandler struct {
	search        SongSearcher
	sentryMetrics *metrics.SentryMetrics
	cloudwatch    *metrics.Client
}

func NewSongsHandler(search SongSearcher, cloudwatch *metrics.Client) *SongsHandler {
	return &SongsHandler{
		search:        search,
		sentryMetrics: metrics.NewSentryMetrics(),
		cloudwatch:    cloudwatch,
	}
}

// Search proxies song search. Upstream failure degrades to an empty result
// with a transient notice.
func (h *SongsHandler) Search(c *gin.Context) {
	term := c.Query("q")
	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	start := time.Now()
	songs, err := h.search.SearchSongs(c.Request.Context(), term, limit)
	duration := time.Since(start)

	h.sentryMetrics.RecordUpstreamCall(c.Request.Context(), "itunes", duration, err)
	if h.cloudwatch != nil {
		h.cloudwatch.RecordUpstreamCall("itunes", duration, err == nil)
	}

	if err != nil {
		fields := logger.WithContext(c)
		fields["upstream"] = "itunes"
		fields["term"] = term
		logger.Error("song search failed", err, fields)
		c.JSON(http.StatusOK, gin.H{
			"songs":  []models.Song{},
			"notice": "song search temporarily unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"songs": songs})
}
