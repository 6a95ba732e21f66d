package booking

import (
	"fmt"
	"strings"
	"time"

	"pilgrimpath/models"
)

const (
	firstSlotHour = 8
	lastSlotHour  = 20

	// share of future slots drawn as Full, and as Full or Filling Fast
	fullShare        = 0.3
	fillingFastShare = 0.6
)

func isLunchBreak(hour int) bool {
	return hour == 13 || hour == 14
}

// SlotGenerator produces the day's darshan slots with simulated crowding.
type SlotGenerator struct {
	Rand Source
	Now  func() time.Time
}

// NewSlotGenerator returns a generator; nil arguments fall back to the
// process-wide random source and the wall clock.
func NewSlotGenerator(src Source, now func() time.Time) *SlotGenerator {
	if src == nil {
		src = DefaultSource
	}
	if now == nil {
		now = time.Now
	}
	return &SlotGenerator{Rand: src, Now: now}
}

// ClockIn returns a clock that reads the current time in loc, so "past
// hours" are judged on the temple's clock rather than the host's.
func ClockIn(loc *time.Location) func() time.Time {
	return func() time.Time {
		return time.Now().In(loc)
	}
}

// Generate returns one slot per opening hour, ascending. Hours already past
// are Full; later hours get a random availability.
func (g *SlotGenerator) Generate() []models.DarshanSlot {
	currentHour := g.Now().Hour()

	slots := make([]models.DarshanSlot, 0, lastSlotHour-firstSlotHour-1)
	for hour := firstSlotHour; hour <= lastSlotHour; hour++ {
		if isLunchBreak(hour) {
			continue
		}

		availability := models.AvailabilityAvailable
		if hour < currentHour {
			availability = models.AvailabilityFull
		} else {
			r := g.Rand.Float64()
			switch {
			case r < fullShare:
				availability = models.AvailabilityFull
			case r < fillingFastShare:
				availability = models.AvailabilityFillingFast
			}
		}

		slots = append(slots, models.DarshanSlot{
			ID:           fmt.Sprintf("slot-%d", hour),
			Hour:         hour,
			Time:         SlotTime(hour),
			Availability: availability,
		})
	}
	return slots
}

// SlotTime renders the display range of the slot starting at hour.
func SlotTime(hour int) string {
	return fmt.Sprintf("%02d:00 - %02d:00", hour, hour+1)
}

// slotStart is the "HH:00" half of a display range.
func slotStart(slot models.DarshanSlot) string {
	start, _, _ := strings.Cut(slot.Time, " - ")
	return start
}

// AvailableSlots filters slots down to the bookable ones, keeping order.
func AvailableSlots(slots []models.DarshanSlot) []models.DarshanSlot {
	var out []models.DarshanSlot
	for _, s := range slots {
		if s.IsAvailable() {
			out = append(out, s)
		}
	}
	return out
}
