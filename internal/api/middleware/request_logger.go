package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// RequestLogger attaches a logger carrying the request id to the request
// context and writes one access entry per request. It must run after the
// RequestID middleware.
func RequestLogger(base zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			id := c.Response().Header().Get(echo.HeaderXRequestID)
			if id == "" {
				id = req.Header.Get(echo.HeaderXRequestID)
			}

			l := base.With().Str("request_id", id).Logger()
			c.SetRequest(req.WithContext(l.WithContext(req.Context())))

			if err := next(c); err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			var ev *zerolog.Event
			switch {
			case status >= 500:
				ev = l.Error()
			case status >= 400:
				ev = l.Warn()
			default:
				ev = l.Info()
			}
			ev.Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("route", c.Path()).
				Int("status", status).
				Dur("latency", time.Since(start)).
				Str("remote_ip", c.RealIP()).
				Msg("request")
			return nil
		}
	}
}
