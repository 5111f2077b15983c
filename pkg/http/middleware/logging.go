package middleware

import (
	"time"

	applogger "FinBoard/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RequestLogging logs every request through the application logger.
func RequestLogging(l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			res := c.Response()
			start := time.Now()

			err := next(c)

			l.Info("request",
				applogger.String("method", req.Method),
				applogger.String("uri", req.RequestURI),
				applogger.String("remote", req.RemoteAddr),
				applogger.Int("status", res.Status),
				applogger.Duration("latency", time.Since(start)),
			)

			return err
		}
	}
}
