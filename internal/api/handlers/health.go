package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/frequency-social/frequency-api/internal/config"
)

// HealthCheck reports liveness and which upstreams are configured. It never
// calls the upstreams themselves; a degraded upstream degrades responses,
// not health.
func HealthCheck(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		upstream := func(configured bool) string {
			if configured {
				return "configured"
			}
			return "unconfigured"
		}

		c.JSON(http.StatusOK, gin.H{
			"status":      "healthy",
			"environment": cfg.Environment,
			"upstreams": gin.H{
				"spotify": upstream(cfg.SpotifyConfigured()),
				"lastfm":  upstream(cfg.LastFMConfigured()),
				"itunes":  "configured",
				"reddit":  "configured",
			},
		})
	}
}
