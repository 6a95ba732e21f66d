package models

import (
	"fmt"
	"slices"
)

// ConversationState is the step the booking dialogue is parked at.
// The zero value means no booking conversation is in progress.
type ConversationState string

const (
	StateNone            ConversationState = ""
	StateInitial         ConversationState = "initial"
	StateAskTime         ConversationState = "ask_time"
	StateShowSlots       ConversationState = "show_slots"
	StateAskDetails      ConversationState = "ask_details"
	StateConfirmBooking  ConversationState = "confirm_booking"
	StateBookingComplete ConversationState = "booking_complete"
)

// ConversationStates lists every non-empty state.
var ConversationStates = []ConversationState{
	StateInitial, StateAskTime, StateShowSlots,
	StateAskDetails, StateConfirmBooking, StateBookingComplete,
}

// Valid reports whether s is empty or one of the known states.
func (s ConversationState) Valid() bool {
	if s == StateNone {
		return true
	}
	for _, known := range ConversationStates {
		if s == known {
			return true
		}
	}
	return false
}

func (s *ConversationState) UnmarshalText(b []byte) error {
	v := ConversationState(b)
	if !v.Valid() {
		return fmt.Errorf("unknown booking state %q", string(b))
	}
	*s = v
	return nil
}

// BookingStatus is the lifecycle of a darshan booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingFailed    BookingStatus = "failed"
)

// Pilgrim is a named member of the booking party.
type Pilgrim struct {
	ID               int    `bson:"id" json:"id"`
	Name             string `bson:"name" json:"name"`
	Age              string `bson:"age" json:"age"`
	Gender           string `bson:"gender" json:"gender"` // Male, Female, Other or empty
	DifferentlyAbled bool   `bson:"differentlyAbled" json:"differentlyAbled"`
}

// BookingData accumulates across the turns of a booking conversation.
type BookingData struct {
	SelectedSlot       *DarshanSlot  `bson:"selectedSlot,omitempty" json:"selectedSlot,omitempty"`     // nil until a time is chosen
	AvailableSlots     []DarshanSlot `bson:"availableSlots,omitempty" json:"availableSlots,omitempty"` // slots offered when the flow started
	Pilgrims           []Pilgrim     `bson:"pilgrims" json:"pilgrims"`
	SeniorCitizenCount int           `bson:"seniorCitizenCount" json:"seniorCitizenCount"`
	TotalMembers       int           `bson:"totalMembers" json:"totalMembers"` // party size, 1..10 once confirmed
	BookingID          string        `bson:"bookingId,omitempty" json:"bookingId,omitempty"`
	Status             BookingStatus `bson:"status" json:"status"`
}

// NewBookingShell returns the empty booking a conversation starts from.
func NewBookingShell() BookingData {
	return BookingData{
		Pilgrims: []Pilgrim{},
		Status:   BookingPending,
	}
}

// Clone returns a copy that shares no slices or pointers with b.
func (b BookingData) Clone() BookingData {
	out := b
	if b.SelectedSlot != nil {
		slot := *b.SelectedSlot
		out.SelectedSlot = &slot
	}
	out.AvailableSlots = slices.Clone(b.AvailableSlots)
	out.Pilgrims = slices.Clone(b.Pilgrims)
	return out
}
