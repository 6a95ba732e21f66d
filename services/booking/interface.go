package booking

import (
	"time"

	"pilgrimpath/models"
)

// ConversationFlow advances a darshan booking dialogue by one turn. It does no
// I/O; the conversation lives entirely in the Turn the caller passes in.
type ConversationFlow interface {
	Advance(turn Turn) Step
	Slots() []models.DarshanSlot
}

// Turn is one user utterance plus the state the caller held for it.
type Turn struct {
	Utterance string
	Language  models.Language
	State     models.ConversationState
	Booking   *models.BookingData // nil when the caller has none
}

// Step is the outcome of a turn: the state and booking to hand back next
// time, and the text to show the pilgrim.
type Step struct {
	State        models.ConversationState
	Booking      models.BookingData
	ResponseText string
}

// Response wraps the step the way the assistant returns every turn.
func (s Step) Response() *models.AIResponse {
	booking := s.Booking
	return &models.AIResponse{
		Intent:       models.IntentBookingConversation,
		ResponseText: s.ResponseText,
		Data: &models.AIResponseData{
			BookingState: s.State,
			BookingData:  &booking,
		},
	}
}

// DefaultConversationFlow implements ConversationFlow.
type DefaultConversationFlow struct {
	Generator *SlotGenerator
	Rand      Source
	Now       func() time.Time
}

// NewConversationFlow wires a flow and its slot generator to the same random
// source and clock; nil arguments mean the process-wide source and time.Now.
func NewConversationFlow(src Source, now func() time.Time) *DefaultConversationFlow {
	gen := NewSlotGenerator(src, now)
	return &DefaultConversationFlow{
		Generator: gen,
		Rand:      gen.Rand,
		Now:       gen.Now,
	}
}

// Slots returns a freshly generated slot list.
func (f *DefaultConversationFlow) Slots() []models.DarshanSlot {
	return f.Generator.Generate()
}
