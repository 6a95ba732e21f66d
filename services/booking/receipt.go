package booking

import (
	"encoding/json"
	"fmt"
	"time"

	"pilgrimpath/models"
)

// BuildReceipt checks that a finished booking is complete and returns the
// QR receipt for it.
func BuildReceipt(b models.BookingData, now time.Time) (models.BookingReceipt, error) {
	switch {
	case b.SelectedSlot == nil:
		return models.BookingReceipt{}, NewReceiptError("booking has no slot")
	case b.TotalMembers < minPartySize || b.TotalMembers > maxPartySize:
		return models.BookingReceipt{}, NewReceiptError(fmt.Sprintf("party size %d out of range", b.TotalMembers))
	case b.BookingID == "":
		return models.BookingReceipt{}, NewReceiptError("booking has no id")
	}
	return models.BookingReceipt{
		BookingID: b.BookingID,
		Slot:      b.SelectedSlot.Time,
		Pilgrims:  b.TotalMembers,
		Timestamp: now.UTC(),
	}, nil
}

// NewHistoryRecord turns a completed booking into the record kept in the
// pilgrim's booking history.
func NewHistoryRecord(sessionID string, lang models.Language, b models.BookingData, now time.Time) (models.BookingHistoryRecord, models.BookingReceipt, error) {
	receipt, err := BuildReceipt(b, now)
	if err != nil {
		return models.BookingHistoryRecord{}, models.BookingReceipt{}, err
	}
	payload, err := json.Marshal(receipt)
	if err != nil {
		return models.BookingHistoryRecord{}, models.BookingReceipt{}, fmt.Errorf("encode receipt: %w", err)
	}

	pilgrims := b.Pilgrims
	if pilgrims == nil {
		pilgrims = []models.Pilgrim{}
	}
	return models.BookingHistoryRecord{
		ID:                 b.BookingID,
		SessionID:          sessionID,
		SlotID:             b.SelectedSlot.ID,
		SlotTime:           b.SelectedSlot.Time,
		Pilgrims:           pilgrims,
		TotalMembers:       b.TotalMembers,
		SeniorCitizenCount: b.SeniorCitizenCount,
		Status:             models.BookingConfirmed,
		Language:           lang,
		QRPayload:          string(payload),
		CreatedAt:          receipt.Timestamp,
	}, receipt, nil
}

// ReceiptFromRecord reads the receipt back out of a stored record's QR payload.
func ReceiptFromRecord(record models.BookingHistoryRecord) (models.BookingReceipt, error) {
	var receipt models.BookingReceipt
	if err := json.Unmarshal([]byte(record.QRPayload), &receipt); err != nil {
		return models.BookingReceipt{}, fmt.Errorf("decode receipt of %s: %w", record.ID, err)
	}
	return receipt, nil
}
