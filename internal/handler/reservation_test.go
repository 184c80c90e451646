package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eldarv/cinema-reservation/internal/booking"
	"github.com/eldarv/cinema-reservation/internal/model"
	"github.com/eldarv/cinema-reservation/internal/repository"
)

type steppingClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *steppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *steppingClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// newTestHandler wires a ReservationHandler over the in-memory store
// with one auditorium (row 1, seats 1-5) and one showtime.
func newTestHandler(t *testing.T) (*ReservationHandler, *steppingClock) {
	t.Helper()
	store := repository.NewMemoryStore()
	aud := model.Auditorium{ID: 1}
	for n := uint32(1); n <= 5; n++ {
		aud.Seats = append(aud.Seats, model.Seat{AuditoriumID: 1, Row: 1, SeatNumber: n})
	}
	store.AddAuditorium(aud)
	_, err := store.CreateShowtime(context.Background(), model.Showtime{
		AuditoriumID: 1,
		MovieTitle:   "Paris, Texas",
		SessionDate:  time.Date(2025, 6, 1, 21, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	clk := &steppingClock{now: time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)}
	engine := booking.NewEngine(store, store, store, store, clk, 10)
	return NewReservationHandler(engine, false), clk
}

func doReserve(t *testing.T, h *ReservationHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/reservations", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Reserve(e.NewContext(req, rec)))
	return rec
}

func doConfirm(t *testing.T, h *ReservationHandler, id string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/reservations/:id/confirm")
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, h.Confirm(c))
	return rec
}

func doGet(t *testing.T, h *ReservationHandler, id string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/reservations/:id")
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, h.Get(c))
	return rec
}

func reservationID(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var view booking.ReservationView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.NotEmpty(t, view.ID)
	return view.ID
}

func TestReserveReturnsCreated(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doReserve(t, h, `{"showtime_id":1,"row":1,"seats":[1,2,3]}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var view booking.ReservationView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, booking.StatusActive, view.Status)
	assert.Equal(t, 3, view.NoOfSeats)
	assert.Equal(t, "Paris, Texas", view.MovieTitle)
	assert.False(t, view.ExpiresAt.IsZero())
}

func TestReserveRejectsBadRequests(t *testing.T) {
	h, _ := newTestHandler(t)

	tests := []struct {
		name string
		body string
		code int
	}{
		{name: "no seats", body: `{"showtime_id":1,"row":1,"seats":[]}`, code: http.StatusBadRequest},
		{name: "gap in run", body: `{"showtime_id":1,"row":1,"seats":[1,3]}`, code: http.StatusBadRequest},
		{name: "unknown showtime", body: `{"showtime_id":42,"row":1,"seats":[1]}`, code: http.StatusNotFound},
		{name: "seat beyond the row", body: `{"showtime_id":1,"row":1,"seats":[5,6]}`, code: http.StatusNotFound},
		{name: "malformed body", body: `{"seats":"front"}`, code: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doReserve(t, h, tt.body)
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestReserveReportsConflict(t *testing.T) {
	h, _ := newTestHandler(t)

	first := doReserve(t, h, `{"showtime_id":1,"row":1,"seats":[1,2]}`)
	require.Equal(t, http.StatusCreated, first.Code)

	second := doReserve(t, h, `{"showtime_id":1,"row":1,"seats":[2,3]}`)
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Contains(t, second.Body.String(), "error")
}

func TestConfirmFlow(t *testing.T) {
	h, clk := newTestHandler(t)

	id := reservationID(t, doReserve(t, h, `{"showtime_id":1,"row":1,"seats":[1,2]}`))

	rec := doConfirm(t, h, id)
	assert.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Message     string                  `json:"message"`
		Reservation booking.ReservationView `json:"reservation"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, booking.StatusPaid, payload.Reservation.Status)

	// Still paid long after the hold window.
	clk.Advance(time.Hour)
	got := doGet(t, h, id)
	assert.Equal(t, http.StatusOK, got.Code)
	assert.Contains(t, got.Body.String(), fmt.Sprintf("%q", booking.StatusPaid))
}

func TestConfirmUnknownReservation(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doConfirm(t, h, "no-such-id")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetExpiredReservation(t *testing.T) {
	h, clk := newTestHandler(t)

	id := reservationID(t, doReserve(t, h, `{"showtime_id":1,"row":1,"seats":[4,5]}`))
	clk.Advance(11 * time.Minute)

	rec := doGet(t, h, id)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// The lapsed record stays inspectable alongside the error.
	var payload struct {
		Error       string                  `json:"error"`
		Reservation booking.ReservationView `json:"reservation"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.NotEmpty(t, payload.Error)
	assert.Equal(t, booking.StatusExpired, payload.Reservation.Status)
	assert.Equal(t, 2, payload.Reservation.NoOfSeats)

	// An expired hold cannot be paid for any more.
	confirm := doConfirm(t, h, id)
	assert.Equal(t, http.StatusConflict, confirm.Code)
}

func TestGetUnknownReservation(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doGet(t, h, "no-such-id")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
