package models

import "time"

// Intent is the classified purpose of an utterance.
type Intent string

const (
	IntentNavigate Intent = "navigate"
	IntentBook     Intent = "book"
	IntentSOS      Intent = "sos"
	IntentAnswer   Intent = "answer"
	// IntentBookingConversation marks a turn produced by the booking flow.
	IntentBookingConversation Intent = "booking_conversation"
)

// Classifiable reports whether the model may return i.
func (i Intent) Classifiable() bool {
	switch i {
	case IntentNavigate, IntentBook, IntentSOS, IntentAnswer:
		return true
	}
	return false
}

// ChatRequest is the payload coming from the frontend into /api/assistant/chat.
type ChatRequest struct {
	SessionID string   `json:"sessionId,omitempty"`     // empty starts a new conversation
	Text      string   `json:"text" binding:"required"` // user's message (voice→text or typed)
	Language  Language `json:"language,omitempty"`      // defaults to en-US
}

// AIResponseData carries the structured side of a response.
type AIResponseData struct {
	PoiID             string            `json:"poiId,omitempty"`             // navigation target
	BookingState      ConversationState `json:"bookingState,omitempty"`      // state to send back next turn
	BookingData       *BookingData      `json:"bookingData,omitempty"`       // partial booking to send back next turn
	NavigationDelayMs int               `json:"navigationDelayMs,omitempty"` // wait before navigating
	CloseOverlay      bool              `json:"closeOverlay,omitempty"`      // close the assistant before navigating
}

// AIResponse is one assistant turn.
type AIResponse struct {
	Intent       Intent          `json:"intent"`
	ResponseText string          `json:"responseText"`
	Data         *AIResponseData `json:"data,omitempty"`
}

// ChatResponse is what the chat handler returns to the frontend.
type ChatResponse struct {
	SessionID string          `json:"sessionId"`
	Intent    Intent          `json:"intent"`
	Messages  []string        `json:"messages"` // assistant lines to render in order
	Data      *AIResponseData `json:"data,omitempty"`
	Receipt   *BookingReceipt `json:"receipt,omitempty"` // set on the turn a booking completes
}

// AssistantSession is the per-conversation state the chat handler keeps
// between turns.
type AssistantSession struct {
	ID           string            `json:"id"`
	Language     Language          `json:"language"`
	BookingState ConversationState `json:"bookingState,omitempty"`
	BookingData  *BookingData      `json:"bookingData,omitempty"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// ResetBooking drops any booking conversation from the session.
func (s *AssistantSession) ResetBooking() {
	s.BookingState = StateNone
	s.BookingData = nil
}
