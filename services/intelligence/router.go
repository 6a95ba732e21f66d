package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"pilgrimpath/models"
	"pilgrimpath/services/booking"
	"pilgrimpath/services/i18n"

	genai "github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
)

// NavigationDelayMs is how long the client waits before switching to the map.
const NavigationDelayMs = 1500

const fallbackApology = "I'm sorry, but I'm having trouble connecting to my knowledge base right now. Please check your connection and try again in a moment."

var sosKeywords = []string{"sos", "emergency", "help me", "accident", "medical", "police", "fire"}

func isSOS(utterance string) bool {
	lower := strings.ToLower(utterance)
	for _, kw := range sosKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Respond produces the assistant's answer to one utterance. A query carrying
// a booking state goes to the booking flow; emergency words short-circuit to
// sos; everything else is classified by the model. Remote failures come back
// as an apology with intent answer, never as an error.
func (s *DefaultAIService) Respond(ctx context.Context, q Query) *models.AIResponse {
	if q.State != models.StateNone {
		return s.Flow.Advance(booking.Turn{
			Utterance: q.Utterance,
			Language:  q.Language,
			State:     q.State,
			Booking:   q.Booking,
		}).Response()
	}

	if isSOS(q.Utterance) {
		return &models.AIResponse{
			Intent:       models.IntentSOS,
			ResponseText: i18n.Text(q.Language, i18n.SOSAlert),
		}
	}

	resp, err := s.classify(ctx, q)
	if err != nil {
		s.Logger.Error("Error getting help response",
			zap.Error(err),
			zap.String("language", string(q.Language)),
		)
		return &models.AIResponse{
			Intent:       models.IntentAnswer,
			ResponseText: fallbackApology,
		}
	}
	return resp
}

func (s *DefaultAIService) classify(ctx context.Context, q Query) (*models.AIResponse, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	langName := q.Language.Name()
	raw, err := s.Generator.GenerateContent(ctx, GenerationRequest{
		SystemInstruction: systemInstruction(langName),
		Prompt:            q.Utterance,
		Temperature:       0.7,
		ResponseSchema:    intentSchema(langName),
	})
	if err != nil {
		return nil, err
	}
	return s.parseIntentReply(raw)
}

type intentReply struct {
	Intent       models.Intent `json:"intent"`
	ResponseText string        `json:"responseText"`
	Data         *struct {
		PoiID string `json:"poiId"`
	} `json:"data"`
}

func (s *DefaultAIService) parseIntentReply(raw string) (*models.AIResponse, error) {
	body := stripCodeFence(raw)
	if body == "" {
		return nil, errors.New("empty model reply")
	}

	var reply intentReply
	if err := json.Unmarshal([]byte(body), &reply); err != nil {
		return nil, fmt.Errorf("decode model reply: %w", err)
	}
	if strings.TrimSpace(reply.ResponseText) == "" {
		return nil, errors.New("model reply has no responseText")
	}

	resp := &models.AIResponse{
		Intent:       reply.Intent,
		ResponseText: reply.ResponseText,
	}
	if !resp.Intent.Classifiable() {
		s.Logger.Warn("Model returned unknown intent", zap.String("intent", string(reply.Intent)))
		resp.Intent = models.IntentAnswer
	}

	if reply.Data != nil && reply.Data.PoiID != "" {
		if !models.IsPointOfInterest(reply.Data.PoiID) {
			s.Logger.Warn("Model returned unknown poiId", zap.String("poiId", reply.Data.PoiID))
		} else {
			resp.Data = &models.AIResponseData{PoiID: reply.Data.PoiID}
			if resp.Intent == models.IntentNavigate {
				resp.Data.NavigationDelayMs = NavigationDelayMs
				resp.Data.CloseOverlay = true
			}
		}
	}
	return resp, nil
}

// stripCodeFence removes a Markdown code fence the model may wrap JSON in.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if len(s) >= 4 && strings.EqualFold(s[:4], "json") {
		s = s[4:]
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func systemInstruction(langName string) string {
	var pois strings.Builder
	for _, p := range models.PointsOfInterest {
		fmt.Fprintf(&pois, "    - %s: '%s'\n", p.Name, p.ID)
	}

	return fmt.Sprintf(`You are a friendly and helpful AI assistant for the Pilgrim Path app, designed for pilgrims at the Somnath Temple in Gujarat.

    **Strict Rules:**
    1. Your entire output MUST be a single, valid JSON object and nothing else. Do not add any text before or after the JSON.
    2. The 'responseText' field MUST be in the requested language: %s.
    3. All other fields ('intent', 'poiId') MUST remain in English. Do not translate the 'intent' or 'poiId' values.

    **Available Points of Interest (POIs) for navigation and their IDs:**
%s
    **Intent Analysis:**
    Analyze the user's query and determine their intent:
    1. 'navigate': User wants directions (e.g., "Where is the prasad counter?").
    2. 'book': User wants to book a darshan slot (e.g., "Book a ticket", "I want to book darshan").
    3. 'sos': User expresses distress or asks for emergency help (e.g., "Help me", "Emergency").
    4. 'answer': For all other general questions.

    If the user wants to book a darshan slot, set intent to 'book'. The booking conversation is handled separately.

    **Example for a Hindi query:**
    - User Query: "मुझे प्रसाद काउंटर कहाँ मिलेगा?"
    - Expected JSON Output:
      {"intent": "navigate", "responseText": "ज़रूर, मैं आपको नक्शे पर प्रसाद काउंटर का रास्ता दिखाता हूँ।", "data": {"poiId": "prasad"}}

    Now, analyze the user's request and respond.`, langName, pois.String())
}

func intentSchema(langName string) *genai.Schema {
	poiIDs := make([]string, len(models.PointsOfInterest))
	for i, p := range models.PointsOfInterest {
		poiIDs[i] = p.ID
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"intent": {
				Type:        genai.TypeString,
				Format:      "enum",
				Enum:        []string{string(models.IntentNavigate), string(models.IntentBook), string(models.IntentSOS), string(models.IntentAnswer)},
				Description: "The user's intent. Must be one of: 'navigate', 'book', 'sos', 'answer'.",
			},
			"responseText": {
				Type:        genai.TypeString,
				Description: fmt.Sprintf("The response to the user in %s.", langName),
			},
			"data": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"poiId": {
						Type:        genai.TypeString,
						Format:      "enum",
						Enum:        poiIDs,
						Description: "The Point of Interest ID for navigation, if applicable. E.g., 'temple', 'prasad'.",
					},
				},
			},
		},
		Required: []string{"intent", "responseText"},
	}
}
