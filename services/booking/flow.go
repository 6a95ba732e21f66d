package booking

import (
	"strconv"
	"strings"

	"pilgrimpath/models"
	"pilgrimpath/services/i18n"
)

// slots listed when the flow opens
const openingSlotCount = 5

const (
	minPartySize = 1
	maxPartySize = 10
)

type stepFunc func(f *DefaultConversationFlow, t Turn, b models.BookingData) Step

// transitions holds one step function per state. The empty state is a
// conversation that has not started yet.
var transitions = map[models.ConversationState]stepFunc{
	models.StateNone:            (*DefaultConversationFlow).startBooking,
	models.StateInitial:         (*DefaultConversationFlow).startBooking,
	models.StateAskTime:         (*DefaultConversationFlow).chooseTime,
	models.StateAskDetails:      (*DefaultConversationFlow).collectPartySize,
	models.StateBookingComplete: (*DefaultConversationFlow).bookingComplete,
	models.StateShowSlots:       (*DefaultConversationFlow).restartBooking,
	models.StateConfirmBooking:  (*DefaultConversationFlow).restartBooking,
}

// Advance runs the step function for the turn's state. Unparseable input
// re-prompts in the same state; Advance never fails.
func (f *DefaultConversationFlow) Advance(t Turn) Step {
	booking := models.NewBookingShell()
	if t.Booking != nil {
		booking = t.Booking.Clone()
	}

	step, ok := transitions[t.State]
	if !ok {
		step = (*DefaultConversationFlow).restartBooking
	}
	return step(f, t, booking)
}

func (f *DefaultConversationFlow) startBooking(t Turn, _ models.BookingData) Step {
	booking := models.NewBookingShell()
	booking.AvailableSlots = f.Generator.Generate()

	open := AvailableSlots(booking.AvailableSlots)
	if len(open) > openingSlotCount {
		open = open[:openingSlotCount]
	}
	return Step{
		State:        models.StateAskTime,
		Booking:      booking,
		ResponseText: i18n.Text(t.Language, i18n.StartBooking, bulletList(t.Language, open)),
	}
}

func (f *DefaultConversationFlow) chooseTime(t Turn, b models.BookingData) Step {
	if len(b.AvailableSlots) == 0 {
		b.AvailableSlots = f.Generator.Generate()
	}

	slot, ok := MatchSlot(t.Utterance, b.AvailableSlots)
	if !ok {
		return Step{
			State:        models.StateAskTime,
			Booking:      b,
			ResponseText: i18n.Text(t.Language, i18n.SlotNotFound, bulletList(t.Language, AvailableSlots(b.AvailableSlots))),
		}
	}

	b.SelectedSlot = &slot
	b.Pilgrims = []models.Pilgrim{}
	b.SeniorCitizenCount = 0
	b.TotalMembers = 0
	b.Status = models.BookingPending
	return Step{
		State:        models.StateAskDetails,
		Booking:      b,
		ResponseText: i18n.Text(t.Language, i18n.SlotSelected, slot.Time),
	}
}

func (f *DefaultConversationFlow) collectPartySize(t Turn, b models.BookingData) Step {
	// a details turn without a chosen slot cannot produce a booking
	if b.SelectedSlot == nil {
		return f.restartBooking(t, b)
	}

	n := ParsePartySize(t.Utterance)
	if n < minPartySize || n > maxPartySize {
		return Step{
			State:        models.StateAskDetails,
			Booking:      b,
			ResponseText: i18n.Text(t.Language, i18n.AskPartySize),
		}
	}

	b.TotalMembers = n
	b.Pilgrims = []models.Pilgrim{}
	b.SeniorCitizenCount = 0
	b.Status = models.BookingConfirmed
	b.BookingID = f.newBookingID()
	b.SelectedSlot.Booked = true
	b.SelectedSlot.BookingID = b.BookingID
	return Step{
		State:        models.StateBookingComplete,
		Booking:      b,
		ResponseText: i18n.Text(t.Language, i18n.BookingConfirmed, n),
	}
}

func (f *DefaultConversationFlow) bookingComplete(t Turn, b models.BookingData) Step {
	return Step{
		State:        models.StateBookingComplete,
		Booking:      b,
		ResponseText: i18n.Text(t.Language, i18n.AlreadyBooked, b.BookingID),
	}
}

func (f *DefaultConversationFlow) restartBooking(t Turn, _ models.BookingData) Step {
	booking := models.NewBookingShell()
	booking.AvailableSlots = f.Generator.Generate()
	return Step{
		State:        models.StateAskTime,
		Booking:      booking,
		ResponseText: i18n.Text(t.Language, i18n.BookingHelp),
	}
}

const bookingIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// newBookingID is "BK", the current unix millis, and five random base36 characters.
func (f *DefaultConversationFlow) newBookingID() string {
	var sb strings.Builder
	sb.WriteString("BK")
	sb.WriteString(strconv.FormatInt(f.Now().UnixMilli(), 10))
	for i := 0; i < 5; i++ {
		sb.WriteByte(bookingIDAlphabet[f.Rand.IntN(len(bookingIDAlphabet))])
	}
	return sb.String()
}

func bulletList(lang models.Language, slots []models.DarshanSlot) string {
	if len(slots) == 0 {
		return i18n.Text(lang, i18n.NoSlotsOpen)
	}
	lines := make([]string, len(slots))
	for i, s := range slots {
		lines[i] = "• " + s.Time
	}
	return strings.Join(lines, "\n")
}
