package routes

import (
	"net/http"
	"time"

	"pilgrimpath/handlers"
	"pilgrimpath/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAssistantRoutes registers the conversational assistant endpoints.
func RegisterAssistantRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/assistant")
	{
		api.POST("/chat", hb.AIChatHandler)
		api.DELETE("/session/:sessionID", hb.ClearSessionHandler)
	}
}

// RegisterBookingRoutes registers darshan slot and history endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/slots", hb.GetSlotsHandler)
	r.GET("/api/bookings/history", hb.GetBookingHistoryHandler)
}

// RegisterInsightRoutes registers the crowd insight endpoints.
func RegisterInsightRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/insights")
	{
		api.POST("/wait-time", hb.WaitTimeHandler)
		api.POST("/safety-alert", hb.SafetyAlertHandler)
		api.POST("/forecast-summary", hb.ForecastSummaryHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"message":  "Jai Somnath, Pilgrim Path is running",
			"services": utils.GetHealthStatus(),
		})
	})
}

// RegisterRoutes sets up CORS and all endpoint groups.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAssistantRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterInsightRoutes(r, hb)
}
