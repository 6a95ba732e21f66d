package booking

import (
	"encoding/json"
	"testing"
	"time"

	"pilgrimpath/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completedBooking() models.BookingData {
	b := models.NewBookingShell()
	b.SelectedSlot = &models.DarshanSlot{ID: "slot-16", Hour: 16, Time: "16:00 - 17:00", Availability: models.AvailabilityAvailable, Booked: true}
	b.TotalMembers = 3
	b.Status = models.BookingConfirmed
	b.BookingID = "BK1792230000000XYZ12"
	return b
}

func TestBuildReceipt_Rejects(t *testing.T) {
	tests := map[string]func(b *models.BookingData){
		"no slot":       func(b *models.BookingData) { b.SelectedSlot = nil },
		"empty party":   func(b *models.BookingData) { b.TotalMembers = 0 },
		"party too big": func(b *models.BookingData) { b.TotalMembers = 11 },
		"no id":         func(b *models.BookingData) { b.BookingID = "" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			b := completedBooking()
			mutate(&b)

			_, err := BuildReceipt(b, time.Now())
			var rerr *ReceiptError
			require.ErrorAs(t, err, &rerr)
			assert.Equal(t, "receiptError", rerr.Code)
		})
	}
}

func TestNewHistoryRecord(t *testing.T) {
	now := time.Date(2026, 10, 17, 15, 4, 5, 0, time.FixedZone("IST", 5*3600+1800))

	record, receipt, err := NewHistoryRecord("sess-1", models.LangGujarati, completedBooking(), now)
	require.NoError(t, err)

	assert.Equal(t, models.BookingReceipt{
		BookingID: "BK1792230000000XYZ12",
		Slot:      "16:00 - 17:00",
		Pilgrims:  3,
		Timestamp: now.UTC(),
	}, receipt)

	assert.Equal(t, "BK1792230000000XYZ12", record.ID)
	assert.Equal(t, "sess-1", record.SessionID)
	assert.Equal(t, "slot-16", record.SlotID)
	assert.Equal(t, "16:00 - 17:00", record.SlotTime)
	assert.Equal(t, 3, record.TotalMembers)
	assert.Equal(t, models.BookingConfirmed, record.Status)
	assert.Equal(t, models.LangGujarati, record.Language)
	assert.Equal(t, now.UTC(), record.CreatedAt)
	assert.NotNil(t, record.Pilgrims)

	var decoded models.BookingReceipt
	require.NoError(t, json.Unmarshal([]byte(record.QRPayload), &decoded))
	assert.Equal(t, receipt.BookingID, decoded.BookingID)
	assert.Equal(t, receipt.Pilgrims, decoded.Pilgrims)
	assert.True(t, receipt.Timestamp.Equal(decoded.Timestamp))
}

func TestNewHistoryRecord_FromFlow(t *testing.T) {
	flow := NewConversationFlow(&scriptedSource{}, clockAt(9, 0))
	step := flow.Advance(Turn{Language: models.LangEnglish})
	step = flow.Advance(Turn{Utterance: "4 pm", Language: models.LangEnglish, State: step.State, Booking: &step.Booking})
	step = flow.Advance(Turn{Utterance: "two of us", Language: models.LangEnglish, State: step.State, Booking: &step.Booking})
	require.Equal(t, models.StateBookingComplete, step.State)

	record, receipt, err := NewHistoryRecord("sess-2", models.LangEnglish, step.Booking, clockAt(9, 1)())
	require.NoError(t, err)
	assert.Equal(t, step.Booking.BookingID, record.ID)
	assert.Equal(t, "16:00 - 17:00", receipt.Slot)
	assert.Equal(t, 2, receipt.Pilgrims)
}

func TestReceiptFromRecord(t *testing.T) {
	now := time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)
	record, receipt, err := NewHistoryRecord("sess-3", models.LangHindi, completedBooking(), now)
	require.NoError(t, err)

	got, err := ReceiptFromRecord(record)
	require.NoError(t, err)
	assert.Equal(t, receipt, got)

	record.QRPayload = "not json"
	_, err = ReceiptFromRecord(record)
	assert.Error(t, err)
}
