package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eldarv/cinema-reservation/internal/model"
	"github.com/eldarv/cinema-reservation/internal/repository"
)

func newShowtimeHandler(t *testing.T) *ShowtimeHandler {
	t.Helper()
	store := repository.NewMemoryStore()
	store.AddAuditorium(model.Auditorium{ID: 1, Seats: []model.Seat{{AuditoriumID: 1, Row: 1, SeatNumber: 1}}})
	return NewShowtimeHandler(store, store)
}

func TestCreateShowtime(t *testing.T) {
	h := newShowtimeHandler(t)

	tests := []struct {
		name string
		body string
		code int
	}{
		{
			name: "created",
			body: `{"auditorium_id":1,"movie_title":"Stalker","session_date":"2025-06-01T21:00:00Z"}`,
			code: http.StatusCreated,
		},
		{
			name: "missing title",
			body: `{"auditorium_id":1,"session_date":"2025-06-01T21:00:00Z"}`,
			code: http.StatusBadRequest,
		},
		{
			name: "unknown auditorium",
			body: `{"auditorium_id":9,"movie_title":"Stalker","session_date":"2025-06-01T21:00:00Z"}`,
			code: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/v1/showtimes", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			require.NoError(t, h.Create(e.NewContext(req, rec)))
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestGetShowtimeRejectsBadID(t *testing.T) {
	h := newShowtimeHandler(t)

	for _, raw := range []string{"abc", "0", "-1"} {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/v1/showtimes/:id")
		c.SetParamNames("id")
		c.SetParamValues(raw)
		require.NoError(t, h.Get(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "id %q", raw)
	}
}

func TestListShowtimesAlwaysReturnsItems(t *testing.T) {
	h := newShowtimeHandler(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/showtimes", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.List(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":[]}`, rec.Body.String())
}
