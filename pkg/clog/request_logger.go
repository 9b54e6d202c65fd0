package clog

import (
	"time"

	"github.com/apex/log"
	"github.com/labstack/echo/v4"
)

// RequestLogger is echo middleware that logs each request after it has been
// handled. Errors are passed to ctx.Error first so the logged status is the
// one the client sees.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()

			err := next(ctx)
			if err != nil {
				ctx.Error(err)
			}

			req := ctx.Request()
			entry := log.WithFields(log.Fields{
				"method":  req.Method,
				"path":    req.URL.Path,
				"status":  ctx.Response().Status,
				"latency": time.Since(start).String(),
			})

			if err != nil {
				entry.WithError(err).Warn("request failed")
			} else {
				entry.Info("request")
			}

			return nil
		}
	}
}
