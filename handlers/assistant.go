package handlers

import (
	"errors"
	"net/http"
	"time"

	historyRepo "pilgrimpath/database/repository/history"
	"pilgrimpath/models"
	"pilgrimpath/services/booking"
	"pilgrimpath/services/i18n"
	ai "pilgrimpath/services/intelligence"
	"pilgrimpath/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AIHandler is the assistant's HTTP surface. It owns the conversation state
// between turns; the AI service itself is stateless.
type AIHandler struct {
	Service  ai.AIService
	Sessions ai.SessionStore
	History  historyRepo.BookingHistoryRepository
	Now      func() time.Time
}

func NewDefaultAIHandler(svc ai.AIService, sessions ai.SessionStore, history historyRepo.BookingHistoryRepository) *AIHandler {
	return &AIHandler{
		Service:  svc,
		Sessions: sessions,
		History:  history,
		Now:      time.Now,
	}
}

// HandleAIRequest runs one assistant turn for a session.
func (h *AIHandler) HandleAIRequest(c *gin.Context) {
	logger := getLogger(c)
	ctx := c.Request.Context()

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	unlock, err := h.Sessions.Lock(ctx, sessionID)
	if errors.Is(err, ai.ErrSessionBusy) {
		utils.JSONError(c, http.StatusConflict, "session is busy", "wait for the previous reply before sending another message")
		return
	}
	if err != nil {
		logger.Error("Failed to lock assistant session", zap.String("sessionId", sessionID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to load session", err.Error())
		return
	}
	defer unlock()

	session, err := h.Sessions.Get(ctx, sessionID)
	if err != nil {
		logger.Error("Failed to load assistant session", zap.String("sessionId", sessionID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to load session", err.Error())
		return
	}

	lang := req.Language
	if lang == "" {
		lang = session.Language
	}
	if !lang.Valid() {
		lang = models.LangEnglish
	}

	resp := h.Service.Respond(ctx, ai.Query{
		Utterance: req.Text,
		Language:  lang,
		State:     session.BookingState,
		Booking:   session.BookingData,
	})
	out := models.ChatResponse{
		SessionID: sessionID,
		Intent:    resp.Intent,
		Messages:  []string{resp.ResponseText},
		Data:      resp.Data,
	}

	// A booking request opens the booking flow straight away.
	if resp.Intent == models.IntentBook {
		resp = h.Service.Respond(ctx, ai.Query{
			Utterance: req.Text,
			Language:  lang,
			State:     models.StateInitial,
		})
		out.Messages = append(out.Messages, resp.ResponseText)
		out.Data = resp.Data
	}

	switch {
	case resp.Intent != models.IntentBookingConversation || resp.Data == nil:
		session.ResetBooking()
	case resp.Data.BookingState == models.StateBookingComplete && resp.Data.BookingData != nil:
		if receipt, ok := h.recordBooking(c, sessionID, lang, *resp.Data.BookingData); ok {
			out.Receipt = &receipt
			out.Messages = append(out.Messages, i18n.Text(lang, i18n.Receipt, receipt.BookingID, receipt.Slot, receipt.Pilgrims))
		}
		session.ResetBooking()
	default:
		session.BookingState = resp.Data.BookingState
		session.BookingData = resp.Data.BookingData
	}

	session.Language = lang
	session.UpdatedAt = h.Now().UTC()
	if err := h.Sessions.Set(ctx, session); err != nil {
		logger.Error("Failed to save assistant session", zap.String("sessionId", sessionID), zap.Error(err))
	}

	c.JSON(http.StatusOK, out)
}

// recordBooking saves a completed booking to the history and returns its receipt.
func (h *AIHandler) recordBooking(c *gin.Context, sessionID string, lang models.Language, b models.BookingData) (models.BookingReceipt, bool) {
	logger := getLogger(c)

	record, receipt, err := booking.NewHistoryRecord(sessionID, lang, b, h.Now())
	if err != nil {
		logger.Error("Completed booking is not valid", zap.String("sessionId", sessionID), zap.Error(err))
		return models.BookingReceipt{}, false
	}
	_, err = h.History.Create(c.Request.Context(), record)
	switch {
	case errors.Is(err, historyRepo.ErrDuplicateBooking):
		return h.existingReceipt(c, sessionID, record.ID)
	case err != nil:
		logger.Error("Failed to save booking history", zap.String("bookingId", record.ID), zap.Error(err))
	}
	logger.Info("Darshan booked",
		zap.String("bookingId", record.ID),
		zap.String("slot", record.SlotTime),
		zap.Int("pilgrims", record.TotalMembers),
	)
	return receipt, true
}

// existingReceipt answers a repeated booking id with the receipt already on
// record. An id held by another session is a collision, not a repeat.
func (h *AIHandler) existingReceipt(c *gin.Context, sessionID, bookingID string) (models.BookingReceipt, bool) {
	logger := getLogger(c)

	existing, err := h.History.GetByID(c.Request.Context(), bookingID)
	if err != nil || existing == nil {
		logger.Error("Failed to load recorded booking", zap.String("bookingId", bookingID), zap.Error(err))
		return models.BookingReceipt{}, false
	}
	if existing.SessionID != sessionID {
		logger.Error("Booking id already used by another session",
			zap.String("bookingId", bookingID),
			zap.String("sessionId", sessionID),
		)
		return models.BookingReceipt{}, false
	}
	receipt, err := booking.ReceiptFromRecord(*existing)
	if err != nil {
		logger.Error("Recorded booking has no receipt", zap.String("bookingId", bookingID), zap.Error(err))
		return models.BookingReceipt{}, false
	}
	logger.Info("Booking already recorded", zap.String("bookingId", bookingID))
	return receipt, true
}

// ClearSession abandons whatever conversation the session holds.
func (h *AIHandler) ClearSession(c *gin.Context) {
	sessionID := c.Param("sessionID")
	if err := h.Sessions.Clear(c.Request.Context(), sessionID); err != nil {
		getLogger(c).Error("Failed to clear assistant session", zap.String("sessionId", sessionID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to clear session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "session cleared", "sessionId": sessionID})
}

// GetSlots returns today's darshan slots.
func (h *AIHandler) GetSlots(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"slots": h.Service.Slots()})
}

// GetBookingHistory lists the bookings made from one session, newest first.
func (h *AIHandler) GetBookingHistory(c *gin.Context) {
	sessionID := c.Query("sessionId")
	if sessionID == "" {
		utils.JSONError(c, http.StatusBadRequest, "sessionId is required", "")
		return
	}
	records, err := h.History.ListBySession(c.Request.Context(), sessionID)
	if err != nil {
		getLogger(c).Error("Failed to list booking history", zap.String("sessionId", sessionID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to load booking history", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": records})
}
