package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/eldarv/cinema-reservation/internal/handler"
)

// RegisterRoutes maps every endpoint onto the provided Echo
// instance.  The reservation endpoints live under /v1/reservations
// and the showtime schedule under /v1/showtimes; /healthz stays
// unversioned for load balancers.
func RegisterRoutes(e *echo.Echo, res *handler.ReservationHandler, shows *handler.ShowtimeHandler) {
	e.GET("/healthz", handler.Health)

	v1 := e.Group("/v1")

	// Seat reservation lifecycle: hold, confirm payment, inspect.
	v1.POST("/reservations", res.Reserve)
	v1.POST("/reservations/:id/confirm", res.Confirm)
	v1.GET("/reservations/:id", res.Get)

	// Showtime management and browsing.
	v1.POST("/showtimes", shows.Create)
	v1.GET("/showtimes", shows.List)
	v1.GET("/showtimes/:id", shows.Get)
}
