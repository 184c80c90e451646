// Package middleware holds the Echo middleware used by the service:
// request-duration logging and redis-backed rate limiting.
package middleware

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
)

// RequestDuration logs every request as "[METHOD] path took Nms"
// together with the response status once the handler chain returns.
func RequestDuration() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			elapsed := time.Since(start)
			status := c.Response().Status
			if err != nil {
				// Let Echo's error handler set the final status; log the raw error.
				log.Printf("request [%s] %s failed after %dms: %v",
					c.Request().Method, c.Request().URL.Path, elapsed.Milliseconds(), err)
				return err
			}
			log.Printf("request [%s] %s took %dms (status=%d)",
				c.Request().Method, c.Request().URL.Path, elapsed.Milliseconds(), status)
			return nil
		}
	}
}
