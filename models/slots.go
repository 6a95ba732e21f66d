package models

// Availability is the crowd status of a darshan slot.
type Availability string

const (
	AvailabilityAvailable   Availability = "Available"
	AvailabilityFillingFast Availability = "Filling Fast"
	AvailabilityFull        Availability = "Full"
)

// DarshanSlot is one bookable hour of temple viewing.
type DarshanSlot struct {
	ID           string       `bson:"id" json:"id"`                                   // e.g. "slot-10"
	Hour         int          `bson:"hour" json:"hour"`                               // start hour, 24h clock
	Time         string       `bson:"time" json:"time"`                               // display range, e.g. "10:00 - 11:00"
	Availability Availability `bson:"availability" json:"availability"`               // Available, Filling Fast or Full
	Booked       bool         `bson:"booked" json:"booked"`                           // set once the pilgrim holds this slot
	BookingID    string       `bson:"bookingId,omitempty" json:"bookingId,omitempty"` // booking holding the slot
}

// IsAvailable reports whether the slot can still be booked.
func (s DarshanSlot) IsAvailable() bool {
	return s.Availability == AvailabilityAvailable
}

