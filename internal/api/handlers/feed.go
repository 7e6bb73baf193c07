package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/frequency-social/frequency-api/internal/logger"
	"github.com/frequency-social/frequency-api/internal/metrics"
	"github.com/frequency-social/frequency-api/internal/models"
)

// FeedHandler proxies subreddit hot posts for starfield content.
type FeedHandler struct {
	feed          PostFetcher
	sentryMetrics *metrics.SentryMetrics
	cloudwatch    *metrics.Client
}

func NewFeedHandler(feed PostFetcher, cloudwatch *metrics.Client) *FeedHandler {
	return &FeedHandler{
		feed:          feed,
		sentryMetrics: metrics.NewSentryMetrics(),
		cloudwatch:    cloudwatch,
	}
}

// Get returns hot posts for a subreddit. Upstream failure degrades to an
// empty feed with a transient notice.
func (h *FeedHandler) Get(c *gin.Context) {
	subreddit := c.DefaultQuery("subreddit", "music")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	start := time.Now()
	posts, err := h.feed.FetchPosts(c.Request.Context(), subreddit, limit)
	duration := time.Since(start)

	h.sentryMetrics.RecordUpstreamCall(c.Request.Context(), "reddit", duration, err)
	if h.cloudwatch != nil {
		h.cloudwatch.RecordUpstreamCall("reddit", duration, err == nil)
	}

	if err != nil {
		fields := logger.WithContext(c)
		fields["upstream"] = "reddit"
		fields["subreddit"] = subreddit
		logger.Error("feed fetch failed", err, fields)
		c.JSON(http.StatusOK, gin.H{
			"posts":  []models.Post{},
			"notice": "feed temporarily unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}
