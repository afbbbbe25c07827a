package http

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestLogger tags each request with an id, echoes it in the response and
// logs the outcome. Requests that carry a session are logged with the
// caller's user id and role.
func RequestLogger(next http.Handler, logger *log.Logger) http.Handler {
	if logger == nil {
		logger = log.Default()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := r.Header.Get(requestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		sess := SessionFromContext(r.Context())
		if sess.Authenticated() {
			logger.Printf("request id=%s method=%s path=%s status=%d user=%d role=%s duration=%s",
				id, r.Method, r.URL.Path, rec.status, sess.UserID, sess.Role, time.Since(start))
			return
		}
		logger.Printf("request id=%s method=%s path=%s status=%d duration=%s",
			id, r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
