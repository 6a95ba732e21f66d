// File: models/records.go
package models

import "time"

// BookingHistoryRecord is a completed darshan booking saved for the pilgrim's history screen.
type BookingHistoryRecord struct {
	ID                 string        `bson:"id" json:"id"`               // booking id, e.g. BK1718000000000AB12C
	SessionID          string        `bson:"sessionId" json:"sessionId"` // assistant session that made the booking
	SlotID             string        `bson:"slotId" json:"slotId"`
	SlotTime           string        `bson:"slotTime" json:"slotTime"`
	Pilgrims           []Pilgrim     `bson:"pilgrims" json:"pilgrims"`
	TotalMembers       int           `bson:"totalMembers" json:"totalMembers"`
	SeniorCitizenCount int           `bson:"seniorCitizenCount" json:"seniorCitizenCount"`
	Status             BookingStatus `bson:"status" json:"status"`
	Language           Language      `bson:"language" json:"language"`
	QRPayload          string        `bson:"qrPayload" json:"qrPayload"` // JSON the client renders as a QR code
	CreatedAt          time.Time     `bson:"createdAt" json:"createdAt"`
}

// BookingReceipt is the data encoded into the booking QR code.
type BookingReceipt struct {
	BookingID string    `json:"bookingId"`
	Slot      string    `json:"slot"`
	Pilgrims  int       `json:"pilgrims"`
	Timestamp time.Time `json:"timestamp"`
}
