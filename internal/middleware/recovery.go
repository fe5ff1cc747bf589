package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// PanicHandler writes the error response for a recovered panic
type PanicHandler func(w http.ResponseWriter, r *http.Request, err any)

// Recovery creates panic recovery middleware. The handler is skipped when the
// panicking handler already started its response.
func Recovery(logger *slog.Logger, handler PanicHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped := WrapResponseWriter(w)
			defer func() {
				err := recover()
				if err == nil {
					return
				}
				if err == http.ErrAbortHandler {
					panic(err)
				}

				logger.LogAttrs(r.Context(), slog.LevelError, "panic recovered",
					slog.Any("error", err),
					slog.String("method", r.Method),
					slog.String("route", routeTemplate(r)),
					slog.Bool("response_started", wrapped.Written()),
					slog.String("stack", string(debug.Stack())),
				)

				if wrapped.Written() {
					return
				}
				handler(wrapped, r, err)
			}()

			next.ServeHTTP(wrapped, r)
		})
	}
}

// DefaultPanicHandler returns a plain 500 Internal Server Error
func DefaultPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
