package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/JaimeStill/beadreader/pkg/handlers"
)

var errInternal = errors.New("internal server error")

// Recover converts a handler panic into a 500 JSON error response.
// http.ErrAbortHandler is re-panicked so the server aborts the connection.
func Recover(logger *slog.Logger) Func {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler {
					panic(v)
				}
				logger.Error(
					"handler panic",
					"method", r.Method,
					"uri", r.URL.RequestURI(),
					"panic", v,
					"stack", string(debug.Stack()),
				)
				handlers.RespondError(w, logger, http.StatusInternalServerError, errInternal)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
