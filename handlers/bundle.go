package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Assistant endpoints
	AIChatHandler       gin.HandlerFunc
	ClearSessionHandler gin.HandlerFunc

	// Booking endpoints
	GetSlotsHandler          gin.HandlerFunc
	GetBookingHistoryHandler gin.HandlerFunc

	// Insight endpoints
	WaitTimeHandler        gin.HandlerFunc
	SafetyAlertHandler     gin.HandlerFunc
	ForecastSummaryHandler gin.HandlerFunc
}

// NewHandlerBundle exposes an AIHandler's endpoints.
func NewHandlerBundle(h *AIHandler) *HandlerBundle {
	return &HandlerBundle{
		AIChatHandler:            h.HandleAIRequest,
		ClearSessionHandler:      h.ClearSession,
		GetSlotsHandler:          h.GetSlots,
		GetBookingHistoryHandler: h.GetBookingHistory,
		WaitTimeHandler:          h.PredictWaitTime,
		SafetyAlertHandler:       h.SafetyAlert,
		ForecastSummaryHandler:   h.ForecastSummary,
	}
}
