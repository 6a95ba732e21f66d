package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"pilgrimpath/models"

	"go.uber.org/zap"
)

const defaultWaitRange = "45-60"

var ErrInvalidCrowdLevel = errors.New("crowd level must be between 0 and 10")

// PredictWaitingTime asks the model for a darshan waiting time range in
// minutes, e.g. "45-60".
func (s *DefaultAIService) PredictWaitingTime(ctx context.Context, crowdLevel int, timeOfDay string) (string, error) {
	if crowdLevel < 0 || crowdLevel > 10 {
		return "", ErrInvalidCrowdLevel
	}

	prompt := fmt.Sprintf("You are a temple crowd management expert. Based on the current crowd level of %d out of 10 and it being %s at a major Indian pilgrimage site, predict the approximate waiting time for darshan. Provide the answer as a range in minutes (e.g., '45-60'). Respond only with the range.",
		crowdLevel, timeOfDay)

	text, err := s.generateText(ctx, prompt, 0.5)
	if err != nil {
		s.Logger.Error("Error predicting waiting time", zap.Error(err), zap.Int("crowdLevel", crowdLevel))
		return "", err
	}

	text = strings.TrimSpace(strings.Replace(text, "minutes", "", 1))
	if text == "" {
		return defaultWaitRange, nil
	}
	return text, nil
}

// GenerateSafetyAlert drafts a calm alert in English, Hindi and Gujarati
// (the latter two in Roman script).
func (s *DefaultAIService) GenerateSafetyAlert(ctx context.Context, situation string) (string, error) {
	prompt := fmt.Sprintf(`Generate a concise, clear, and calming safety alert for pilgrims at a temple for the following situation: %q.
Provide the alert in three languages: English, Hindi (in Roman script), and Gujarati (in Roman script).
Format each language with a title. Example:
**English:** [Alert Message]
**Hindi:** [Alert Message]
**Gujarati:** [Alert Message]`, situation)

	text, err := s.generateText(ctx, prompt, 0.2)
	if err != nil {
		s.Logger.Error("Error generating safety alert", zap.Error(err))
		return "", err
	}
	return text, nil
}

// ForecastSummary turns a weekly crowd forecast into one or two sentences of
// advice.
func (s *DefaultAIService) ForecastSummary(ctx context.Context, forecast []models.ForecastDay) (string, error) {
	data, err := json.Marshal(forecast)
	if err != nil {
		return "", fmt.Errorf("encode forecast: %w", err)
	}

	prompt := fmt.Sprintf(`You are a temple operations expert advising pilgrims. Based on this %d-day visitor forecast data (where level 10 is max): %s, write a brief 1-2 sentence summary. Highlight the busiest days (e.g., weekend, festivals) and give helpful advice. Example: "Expect high traffic this weekend, with a major surge on Wednesday for the Full Moon festival. Plan accordingly."`,
		len(forecast), data)

	text, err := s.generateText(ctx, prompt, 0.6)
	if err != nil {
		s.Logger.Error("Error generating forecast summary", zap.Error(err))
		return "", err
	}
	return text, nil
}

func (s *DefaultAIService) generateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	text, err := s.Generator.GenerateContent(ctx, GenerationRequest{
		Prompt:      prompt,
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
