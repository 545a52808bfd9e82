// Where: internal/server/middleware.go
// What: Request logging and panic recovery.
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// withLogging attaches logger to each request context, assigns a request id
// and writes one access line per request.
func withLogging(logger zerolog.Logger, next http.Handler) http.Handler {
	access := hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	})
	chain := hlog.NewHandler(logger)(
		hlog.RequestIDHandler("req_id", "X-Request-Id")(
			hlog.RemoteAddrHandler("remote")(
				access(next),
			),
		),
	)
	return chain
}

// withRecovery maps a panic in next to the generic error response.
func withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}
			if recovered == http.ErrAbortHandler {
				panic(recovered)
			}
			hlog.FromRequest(r).Error().
				Err(fmt.Errorf("panic: %v", recovered)).
				Msg("page handler panicked")
			writeError(w)
		}()
		next.ServeHTTP(w, r)
	})
}
