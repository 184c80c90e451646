package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eldarv/cinema-reservation/internal/booking"
	"github.com/eldarv/cinema-reservation/internal/model"
)

// ShowtimeStore is what the showtime endpoints need from storage.
type ShowtimeStore interface {
	CreateShowtime(ctx context.Context, st model.Showtime) (model.Showtime, error)
	GetShowtime(ctx context.Context, id uint64) (model.Showtime, error)
	ListShowtimes(ctx context.Context) ([]model.Showtime, error)
}

// ShowtimeHandler serves showtime management: creating a screening
// in an auditorium and browsing the schedule.
type ShowtimeHandler struct {
	Store   ShowtimeStore
	Catalog booking.SeatCatalog
}

// NewShowtimeHandler constructs a ShowtimeHandler.
func NewShowtimeHandler(store ShowtimeStore, catalog booking.SeatCatalog) *ShowtimeHandler {
	if store == nil || catalog == nil {
		panic("nil dependency passed to NewShowtimeHandler")
	}
	return &ShowtimeHandler{Store: store, Catalog: catalog}
}

// Create handles POST /v1/showtimes.
func (h *ShowtimeHandler) Create(c echo.Context) error {
	var body struct {
		AuditoriumID uint64    `json:"auditorium_id"`
		MovieTitle   string    `json:"movie_title"`
		SessionDate  time.Time `json:"session_date"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.AuditoriumID == 0 || body.MovieTitle == "" || body.SessionDate.IsZero() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "auditorium_id, movie_title and session_date are required"})
	}
	ctx := c.Request().Context()
	if _, err := h.Catalog.GetAuditorium(ctx, body.AuditoriumID); err != nil {
		return writeError(c, err)
	}
	st, err := h.Store.CreateShowtime(ctx, model.Showtime{
		AuditoriumID: body.AuditoriumID,
		MovieTitle:   body.MovieTitle,
		SessionDate:  body.SessionDate.UTC(),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message":  "showtime successfully created",
		"showtime": st,
	})
}

// List handles GET /v1/showtimes.
func (h *ShowtimeHandler) List(c echo.Context) error {
	showtimes, err := h.Store.ListShowtimes(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	if showtimes == nil {
		showtimes = []model.Showtime{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": showtimes})
}

// Get handles GET /v1/showtimes/:id.
func (h *ShowtimeHandler) Get(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid showtime id"})
	}
	st, err := h.Store.GetShowtime(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, st)
}
