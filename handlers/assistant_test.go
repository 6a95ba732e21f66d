package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	historyRepo "pilgrimpath/database/repository/history"
	"pilgrimpath/models"
	"pilgrimpath/services/booking"
	ai "pilgrimpath/services/intelligence"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGenerator struct {
	reply string
	err   error
	calls int
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, req ai.GenerationRequest) (string, error) {
	f.calls++
	return f.reply, f.err
}

// openSlots makes every future slot Available and booking ids end in zeros.
type openSlots struct{}

func (openSlots) Float64() float64 { return 0.99 }
func (openSlots) IntN(int) int     { return 0 }

type memorySessions struct {
	mu     sync.Mutex
	data   map[string]models.AssistantSession
	locked map[string]bool
}

func (m *memorySessions) Lock(ctx context.Context, id string) (func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locked[id] {
		return nil, ai.ErrSessionBusy
	}
	m.locked[id] = true
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.locked, id)
	}, nil
}

func (m *memorySessions) Get(ctx context.Context, id string) (*models.AssistantSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.data[id]
	if !ok {
		return &models.AssistantSession{ID: id}, nil
	}
	return &s, nil
}

func (m *memorySessions) Set(ctx context.Context, s *models.AssistantSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[s.ID] = *s
	return nil
}

func (m *memorySessions) Clear(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, id)
	return nil
}

type memoryHistory struct {
	records []models.BookingHistoryRecord
	err     error
}

func (m *memoryHistory) Create(ctx context.Context, r models.BookingHistoryRecord) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	for _, existing := range m.records {
		if existing.ID == r.ID {
			return "", historyRepo.ErrDuplicateBooking
		}
	}
	m.records = append(m.records, r)
	return r.ID, nil
}

func (m *memoryHistory) GetByID(ctx context.Context, id string) (*models.BookingHistoryRecord, error) {
	for i := range m.records {
		if m.records[i].ID == id {
			return &m.records[i], nil
		}
	}
	return nil, nil
}

func (m *memoryHistory) ListBySession(ctx context.Context, sessionID string) ([]models.BookingHistoryRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []models.BookingHistoryRecord{}
	for _, r := range m.records {
		if r.SessionID == sessionID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

var testNow = time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

type testEnv struct {
	router   *gin.Engine
	gen      *fakeGenerator
	sessions *memorySessions
	history  *memoryHistory
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	now := func() time.Time { return testNow }
	gen := &fakeGenerator{}
	svc := ai.NewDefaultAIService(gen, booking.NewConversationFlow(openSlots{}, now), zap.NewNop(), 0)
	env := &testEnv{
		gen:      gen,
		sessions: &memorySessions{data: map[string]models.AssistantSession{}, locked: map[string]bool{}},
		history:  &memoryHistory{},
	}
	h := NewDefaultAIHandler(svc, env.sessions, env.history)
	h.Now = now
	hb := NewHandlerBundle(h)

	r := gin.New()
	r.POST("/api/assistant/chat", hb.AIChatHandler)
	r.DELETE("/api/assistant/session/:sessionID", hb.ClearSessionHandler)
	r.GET("/api/slots", hb.GetSlotsHandler)
	r.GET("/api/bookings/history", hb.GetBookingHistoryHandler)
	r.POST("/api/insights/wait-time", hb.WaitTimeHandler)
	r.POST("/api/insights/safety-alert", hb.SafetyAlertHandler)
	r.POST("/api/insights/forecast-summary", hb.ForecastSummaryHandler)
	env.router = r
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) chat(t *testing.T, sessionID, text string) models.ChatResponse {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/assistant/chat", gin.H{"sessionId": sessionID, "text": text, "language": "en-US"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp models.ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandleAIRequest_BookingConversation(t *testing.T) {
	env := newTestEnv(t)
	env.gen.reply = `{"intent":"book","responseText":"Let's book your darshan."}`

	first := env.chat(t, "", "I want to book darshan")
	require.NotEmpty(t, first.SessionID)
	assert.Equal(t, models.IntentBook, first.Intent)
	require.Len(t, first.Messages, 2)
	assert.Equal(t, "Let's book your darshan.", first.Messages[0])
	assert.Contains(t, first.Messages[1], "What time would you prefer")
	require.NotNil(t, first.Data)
	assert.Equal(t, models.StateAskTime, first.Data.BookingState)

	stored, _ := env.sessions.Get(context.Background(), first.SessionID)
	assert.Equal(t, models.StateAskTime, stored.BookingState)

	second := env.chat(t, first.SessionID, "4 pm please")
	assert.Equal(t, models.IntentBookingConversation, second.Intent)
	assert.Equal(t, models.StateAskDetails, second.Data.BookingState)
	assert.Contains(t, second.Messages[0], "16:00 - 17:00")

	third := env.chat(t, first.SessionID, "we are four")
	assert.Equal(t, models.StateBookingComplete, third.Data.BookingState)
	require.Len(t, third.Messages, 2)
	assert.Contains(t, third.Messages[0], "4 people")
	require.NotNil(t, third.Receipt)
	assert.Equal(t, "16:00 - 17:00", third.Receipt.Slot)
	assert.Equal(t, 4, third.Receipt.Pilgrims)
	assert.Contains(t, third.Messages[1], third.Receipt.BookingID)

	require.Len(t, env.history.records, 1)
	assert.Equal(t, first.SessionID, env.history.records[0].SessionID)
	assert.Equal(t, third.Receipt.BookingID, env.history.records[0].ID)

	stored, _ = env.sessions.Get(context.Background(), first.SessionID)
	assert.Equal(t, models.StateNone, stored.BookingState)
	assert.Nil(t, stored.BookingData)

	// Only the opening utterance needed the model.
	assert.Equal(t, 1, env.gen.calls)
}

func TestHandleAIRequest_SOSDuringBooking(t *testing.T) {
	env := newTestEnv(t)
	env.gen.reply = `{"intent":"book","responseText":"Sure."}`
	first := env.chat(t, "", "book darshan")

	// A parked booking conversation takes the utterance even when it sounds urgent.
	resp := env.chat(t, first.SessionID, "emergency")
	assert.Equal(t, models.IntentBookingConversation, resp.Intent)
	assert.Equal(t, models.StateAskTime, resp.Data.BookingState)

	w := env.do(t, http.MethodDelete, "/api/assistant/session/"+first.SessionID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp = env.chat(t, first.SessionID, "emergency")
	assert.Equal(t, models.IntentSOS, resp.Intent)
	assert.Nil(t, resp.Data)
}

func TestHandleAIRequest_AnswerAndFallback(t *testing.T) {
	env := newTestEnv(t)

	env.gen.reply = `{"intent":"navigate","responseText":"This way to the temple.","data":{"poiId":"temple"}}`
	resp := env.chat(t, "s1", "where is the temple")
	assert.Equal(t, models.IntentNavigate, resp.Intent)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "temple", resp.Data.PoiID)
	assert.Equal(t, ai.NavigationDelayMs, resp.Data.NavigationDelayMs)
	assert.True(t, resp.Data.CloseOverlay)

	env.gen.err = errors.New("offline")
	resp = env.chat(t, "s1", "what time is aarti")
	assert.Equal(t, models.IntentAnswer, resp.Intent)
	require.Len(t, resp.Messages, 1)
	assert.Contains(t, resp.Messages[0], "trouble connecting")
}

func TestHandleAIRequest_SessionLanguageSticks(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodPost, "/api/assistant/chat", gin.H{"sessionId": "s2", "text": "sos", "language": "hi-IN"})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/api/assistant/chat", gin.H{"sessionId": "s2", "text": "sos"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp models.ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Messages[0], "आपातकालीन")
}

func TestHandleAIRequest_InvalidInput(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodPost, "/api/assistant/chat", gin.H{"sessionId": "s3"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, env.gen.calls)
}

func TestGetSlots(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/api/slots", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Slots []models.DarshanSlot `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Slots, 11)
	assert.Equal(t, "08:00 - 09:00", body.Slots[0].Time)
	assert.Equal(t, models.AvailabilityFull, body.Slots[0].Availability)
	assert.Equal(t, models.AvailabilityAvailable, body.Slots[1].Availability)
}

func TestGetBookingHistory(t *testing.T) {
	env := newTestEnv(t)
	base := time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)
	env.history.records = []models.BookingHistoryRecord{
		{ID: "BK1", SessionID: "s4", CreatedAt: base},
		{ID: "BK2", SessionID: "other", CreatedAt: base},
		{ID: "BK3", SessionID: "s4", CreatedAt: base.Add(time.Hour)},
	}

	w := env.do(t, http.MethodGet, "/api/bookings/history", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, "/api/bookings/history?sessionId=s4", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Bookings []models.BookingHistoryRecord `json:"bookings"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Bookings, 2)
	assert.Equal(t, "BK3", body.Bookings[0].ID)
	assert.Equal(t, "BK1", body.Bookings[1].ID)

	env.history.err = errors.New("mongo down")
	w = env.do(t, http.MethodGet, "/api/bookings/history?sessionId=s4", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// bookFourAtFour walks a session through a whole booking for 16:00.
func (e *testEnv) bookFourAtFour(t *testing.T, sessionID string) models.ChatResponse {
	t.Helper()
	e.gen.reply = `{"intent":"book","responseText":"Sure."}`
	e.chat(t, sessionID, "book darshan")
	e.chat(t, sessionID, "4 pm")
	return e.chat(t, sessionID, "four")
}

// flowBookingID is the id the flow produces at testNow with openSlots.
func flowBookingID() string {
	return "BK" + strconv.FormatInt(testNow.UnixMilli(), 10) + "00000"
}

func TestHandleAIRequest_BusySession(t *testing.T) {
	env := newTestEnv(t)
	unlock, err := env.sessions.Lock(context.Background(), "s5")
	require.NoError(t, err)

	w := env.do(t, http.MethodPost, "/api/assistant/chat", gin.H{"sessionId": "s5", "text": "sos"})
	assert.Equal(t, http.StatusConflict, w.Code)

	unlock()
	w = env.do(t, http.MethodPost, "/api/assistant/chat", gin.H{"sessionId": "s5", "text": "sos"})
	assert.Equal(t, http.StatusOK, w.Code)
	// the handler released its own lock
	assert.Empty(t, env.sessions.locked)
}

func TestHandleAIRequest_RepeatedBookingIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	recorded := models.BookingReceipt{BookingID: flowBookingID(), Slot: "16:00 - 17:00", Pilgrims: 4, Timestamp: testNow}
	payload, err := json.Marshal(recorded)
	require.NoError(t, err)
	env.history.records = []models.BookingHistoryRecord{
		{ID: flowBookingID(), SessionID: "s6", QRPayload: string(payload), CreatedAt: testNow},
	}

	resp := env.bookFourAtFour(t, "s6")

	require.NotNil(t, resp.Receipt)
	assert.Equal(t, recorded.BookingID, resp.Receipt.BookingID)
	assert.True(t, recorded.Timestamp.Equal(resp.Receipt.Timestamp))
	require.Len(t, resp.Messages, 2)
	assert.Len(t, env.history.records, 1)
}

func TestHandleAIRequest_BookingIDCollision(t *testing.T) {
	env := newTestEnv(t)
	env.history.records = []models.BookingHistoryRecord{
		{ID: flowBookingID(), SessionID: "someone-else", QRPayload: "{}", CreatedAt: testNow},
	}

	resp := env.bookFourAtFour(t, "s7")

	assert.Equal(t, models.StateBookingComplete, resp.Data.BookingState)
	assert.Nil(t, resp.Receipt)
	assert.Len(t, resp.Messages, 1)
	assert.Len(t, env.history.records, 1)
}
