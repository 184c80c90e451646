// Package handler contains the Echo HTTP handlers.  Handlers do no
// decision-making of their own: they bind requests, call the booking
// engine and translate its sentinel errors into HTTP statuses.
package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eldarv/cinema-reservation/internal/booking"
	"github.com/eldarv/cinema-reservation/internal/queue"
	queuepublisher "github.com/eldarv/cinema-reservation/internal/service"
)

// ReservationHandler serves the reserve/confirm/get endpoints on top
// of the booking engine.  PublishEvents controls whether confirmed
// reservations are announced on the message broker.
type ReservationHandler struct {
	Engine        *booking.Engine
	PublishEvents bool
}

// NewReservationHandler constructs a ReservationHandler.
func NewReservationHandler(engine *booking.Engine, publishEvents bool) *ReservationHandler {
	if engine == nil {
		panic("nil engine passed to NewReservationHandler")
	}
	return &ReservationHandler{Engine: engine, PublishEvents: publishEvents}
}

// Reserve handles POST /v1/reservations.  The body names a showtime,
// a row and the seat numbers to hold.  On success it returns 201
// with the reservation view including its expiry timestamp.
func (h *ReservationHandler) Reserve(c echo.Context) error {
	var body struct {
		ShowtimeID  uint64   `json:"showtime_id"`
		Row         uint32   `json:"row"`
		SeatNumbers []uint32 `json:"seats"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	view, err := h.Engine.Reserve(c.Request().Context(), booking.ReserveInput{
		ShowtimeID:  body.ShowtimeID,
		Row:         body.Row,
		SeatNumbers: body.SeatNumbers,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, view)
}

// Confirm handles POST /v1/reservations/:id/confirm.  A confirmation
// only succeeds while the hold window is still open and none of the
// seats has been bought in the meantime.
func (h *ReservationHandler) Confirm(c echo.Context) error {
	view, err := h.Engine.Confirm(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	if h.PublishEvents {
		// Best effort; a broker outage must not fail the confirmation.
		go func(v booking.ReservationView) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := queuepublisher.PublishReservationConfirmed(ctx, queue.NewReservationConfirmedEvent(v)); err != nil {
				log.Printf("handler: publish reservation.confirmed failed: %v", err)
			}
		}(view)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":     "reservation confirmed successfully",
		"reservation": view,
	})
}

// Get handles GET /v1/reservations/:id.  An expired reservation is
// reported with 409 but still carries the stored record so it stays
// inspectable after the hold window lapses.
func (h *ReservationHandler) Get(c echo.Context) error {
	view, err := h.Engine.Get(c.Request().Context(), c.Param("id"))
	if errors.Is(err, booking.ErrReservationExpired) {
		return c.JSON(http.StatusConflict, echo.Map{
			"error":       err.Error(),
			"reservation": view,
		})
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// writeError translates booking sentinel errors into HTTP responses.
// Unknown errors are logged and reported as a generic 500 so storage
// details never leak to clients.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, booking.ErrShowtimeNotFound),
		errors.Is(err, booking.ErrAuditoriumNotFound),
		errors.Is(err, booking.ErrReservationNotFound),
		errors.Is(err, booking.ErrTicketNotFound),
		errors.Is(err, booking.ErrSeatsNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, booking.ErrNoSeatsRequested),
		errors.Is(err, booking.ErrSeatsNotContiguous):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, booking.ErrSeatsConflict),
		errors.Is(err, booking.ErrSeatsAlreadyPaid),
		errors.Is(err, booking.ErrReservationExpired):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	default:
		log.Printf("handler: internal error: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
}
