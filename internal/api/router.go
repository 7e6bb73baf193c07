package api

import (
	"github.com/gin-gonic/gin"

	"github.com/frequency-social/frequency-api/internal/api/handlers"
	"github.com/frequency-social/frequency-api/internal/api/middleware"
	"github.com/frequency-social/frequency-api/internal/config"
	"github.com/frequency-social/frequency-api/internal/metrics"
	"github.com/frequency-social/frequency-api/internal/music"
	"github.com/frequency-social/frequency-api/internal/services"
)

func SetupRouter(cfg *config.Config, cloudwatch *metrics.Client, version string) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(middleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(middleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(middleware.RequestTracking())

	// CORS middleware
	router.Use(middleware.CORS(cfg.CORSOrigins))

	// Upstream clients
	spotify := music.NewSpotifyClient(cfg.SpotifyClientID, cfg.SpotifyClientSecret)
	lastfm := music.NewLastFMClient(cfg.LastFMAPIKey)
	itunes := music.NewITunesClient()
	reddit := music.NewRedditClient(cfg.RedditUserAgent)

	// Last.fm is the primary similarity source; Spotify covers its outages.
	cacheMetrics := []services.CacheMetrics{metrics.NewSentryMetrics()}
	if cloudwatch != nil {
		cacheMetrics = append(cacheMetrics, cloudwatch)
	}
	similar := services.NewSimilarArtistService(lastfm, spotify, services.DefaultSimilarTTL, cacheMetrics...)

	// Health check
	router.GET("/health", handlers.HealthCheck(cfg))

	// Metrics endpoint
	metricsHandler := handlers.NewMetricsHandler(version)
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	v1 := router.Group("/api/v1")
	{
		// Tuner endpoints - parameter state, frequency points, room generation
		tunerHandler := handlers.NewTunerHandler(cloudwatch)
		v1.GET("/tuner/state", tunerHandler.State)
		v1.GET("/tuner/frequencies", tunerHandler.Frequencies)
		v1.POST("/tuner/rooms", tunerHandler.Rooms)

		// Starfield endpoints - field generation and viewport culling
		starfieldHandler := handlers.NewStarfieldHandler(reddit)
		v1.POST("/starfield", starfieldHandler.Create)
		v1.GET("/starfield/:id/visible", starfieldHandler.Visible)

		// Artist endpoints - search and cached similarity
		artistsHandler := handlers.NewArtistsHandler(spotify, similar, cloudwatch)
		v1.GET("/artists/search", artistsHandler.Search)
		v1.POST("/artists/images", artistsHandler.Images)
		v1.POST("/artists/similar", artistsHandler.Similar)

		// Song search for preview playback
		songsHandler := handlers.NewSongsHandler(itunes, cloudwatch)
		v1.GET("/songs/search", songsHandler.Search)

		// Feed proxy for starfield content
		feedHandler := handlers.NewFeedHandler(reddit, cloudwatch)
		v1.GET("/feed", feedHandler.Get)
	}

	return router
}
