package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticket-booking/internal/logger"
)

// RequestLogger writes one API line per request.
func RequestLogger(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			log.LogAPI(c.Request().Method, c.Request().URL.Path, c.Response().Status, time.Since(start))
			return nil
		}
	}
}
