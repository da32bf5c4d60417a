package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"parley/logger"
	"parley/models"
)

// statusRecorder remembers the status code a handler wrote.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// Flush passes flushes through so streaming handlers keep working behind the
// recorder.
func (rec *statusRecorder) Flush() {
	if f, ok := rec.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// RequestLogger writes one access-log line per request.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Access("%s %s %d %s %s", r.Method, r.URL.Path, rec.status, time.Since(start), r.RemoteAddr)
	})
}

// Recoverer converts handler panics into a 500 ErrorResponse instead of
// tearing down the connection.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("Recoverer: panic serving %s %s: %v", r.Method, r.URL.Path, rec)
				writeJSONError(w, http.StatusInternalServerError, models.NewErrorResponse("Internal server error"))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// writeJSONError marshals an ErrorResponse. Middleware has its own copy of
// this helper; importing the handlers package from here would be circular.
func writeJSONError(w http.ResponseWriter, status int, resp models.ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}
