package middleware

import (
	"net/http"

	"github.com/MonkyMars/gecho"
)

// SetupLoggerMiddleware wires the request logger the middleware stack uses.
func (mw *Middleware) SetupLoggerMiddleware() func(http.Handler) http.Handler {
	return gecho.Handlers.CreateLoggingMiddleware(mw.logger)
}
