package api

import (
	"net/http"

	"tarot-backend/internal/auth/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *Handler) {
	authEnabled := h.config.AuthEnabled()

	// Interpretation is open to guests; with accounts enabled the tier is
	// resolved from the optional bearer token
	interpret := []gin.HandlerFunc{h.readingHandler.Interpret}
	if authEnabled {
		interpret = []gin.HandlerFunc{delivery.OptionalAuthMiddleware(h.authUsecase), h.readingHandler.Interpret}
	}

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// The handler answers OPTIONS and rejects other methods itself
		api.Any("/interpret", interpret...)
		api.Any("/generate-reading", interpret...)

		// Card catalog routes (public)
		cards := api.Group("/cards")
		{
			cards.GET("", h.cardHandler.GetCards)
			cards.GET("/search", h.cardHandler.SearchCards)
			cards.GET("/lookup", h.cardHandler.LookupCard)
			if h.contentHandler != nil {
				cards.GET("/semantic", h.contentHandler.SemanticSearch)
			}
			cards.GET("/:id", h.cardHandler.GetCardByID)
		}
		api.GET("/spreads", h.cardHandler.GetSpreads)

		// Daily card routes (public)
		daily := api.Group("/daily")
		{
			daily.GET("", h.dailyHandler.GetDailyCard)
			daily.GET("/triad", h.dailyHandler.GetTriad)
			daily.GET("/zodiac/:sign", h.dailyHandler.GetSignCard)
		}

		zodiac := api.Group("/zodiac")
		{
			zodiac.GET("", h.dailyHandler.GetSigns)
			zodiac.GET("/for-date", h.dailyHandler.GetSignForDate)
		}

		// Account routes (protected), not mounted in guest mode
		if authEnabled {
			api.GET("/auth/me", delivery.AuthMiddleware(h.authUsecase), h.authHandler.Me)

			if h.historyEnabled {
				// FCM routes (protected)
				fcm := api.Group("/fcm")
				fcm.Use(delivery.AuthMiddleware(h.authUsecase))
				{
					fcm.POST("/register", h.authHandler.RegisterFCMToken)
					fcm.DELETE("/:token", h.authHandler.UnregisterFCMToken)
				}

				// Reading history routes (protected)
				readings := api.Group("/readings")
				readings.Use(delivery.AuthMiddleware(h.authUsecase))
				{
					readings.POST("", h.readingHandler.SaveReading)
					readings.GET("", h.readingHandler.GetReadings)
					readings.GET("/:id", h.readingHandler.GetReadingByID)
					readings.DELETE("/:id", h.readingHandler.DeleteReading)
				}

				// Daily delivery subscription routes (protected)
				subscriptions := api.Group("/subscriptions")
				subscriptions.Use(delivery.AuthMiddleware(h.authUsecase))
				{
					subscriptions.POST("/whatsapp", h.subscriptionHandler.Subscribe)
					subscriptions.GET("/whatsapp", h.subscriptionHandler.GetSubscription)
					subscriptions.DELETE("/whatsapp", h.subscriptionHandler.Unsubscribe)
				}
			}
		}

		// Admin routes (X-Admin-Key)
		if h.contentHandler != nil {
			admin := api.Group("/admin")
			admin.Use(delivery.AdminMiddleware(h.authUsecase))
			{
				admin.POST("/cards/generate-all", h.contentHandler.GenerateAll)
				admin.POST("/cards/import", h.contentHandler.Import)
				admin.POST("/cards/:id/generate", h.contentHandler.GenerateCard)
			}
		}

		// Settings routes - runtime configuration of the local model
		settings := api.Group("/settings")
		settings.Use(delivery.AdminMiddleware(h.authUsecase))
		{
			settings.GET("/ollama", GetOllamaSettings)
			settings.PUT("/ollama", UpdateOllamaSettings)
			settings.POST("/ollama/test", TestOllamaConnection)
		}
	}
}
