// File: services/intelligence/interface.go
package ai

import (
	"context"
	"time"

	"pilgrimpath/models"
	"pilgrimpath/services/booking"

	"go.uber.org/zap"
)

// AIService answers pilgrims: it routes utterances, runs the booking
// dialogue, and produces the crowd insights shown on the home screen.
type AIService interface {
	Respond(ctx context.Context, q Query) *models.AIResponse
	Slots() []models.DarshanSlot
	PredictWaitingTime(ctx context.Context, crowdLevel int, timeOfDay string) (string, error)
	GenerateSafetyAlert(ctx context.Context, situation string) (string, error)
	ForecastSummary(ctx context.Context, forecast []models.ForecastDay) (string, error)
}

// Query is one utterance plus whatever booking conversation the caller holds.
type Query struct {
	Utterance string
	Language  models.Language
	State     models.ConversationState
	Booking   *models.BookingData
}

// DefaultAIService implements AIService. It keeps no conversation state of
// its own.
type DefaultAIService struct {
	Generator ContentGenerator
	Flow      booking.ConversationFlow
	Logger    *zap.Logger
	// Timeout bounds each remote call; zero leaves it to the caller's context.
	Timeout time.Duration
}

func NewDefaultAIService(gen ContentGenerator, flow booking.ConversationFlow, logger *zap.Logger, timeout time.Duration) *DefaultAIService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultAIService{
		Generator: gen,
		Flow:      flow,
		Logger:    logger,
		Timeout:   timeout,
	}
}

// Slots returns a freshly generated slot list for the booking screen.
func (s *DefaultAIService) Slots() []models.DarshanSlot {
	return s.Flow.Slots()
}

func (s *DefaultAIService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.Timeout > 0 {
		return context.WithTimeout(ctx, s.Timeout)
	}
	return context.WithCancel(ctx)
}
