package server

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/abhisek/studyhub/internal/logger"
	"github.com/abhisek/studyhub/internal/store"
)

// ownerHeader carries the authenticated user ID. StudyHub runs behind an
// auth proxy that verifies the session and forwards the identity here;
// requests without it are rejected.
const ownerHeader = "X-Owner-ID"

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}

// ownerMiddleware attaches the authenticated owner to the context so the
// repositories enforce per-user scoping on every query.
func (s *Server) ownerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		owner := r.Header.Get(ownerHeader)
		if owner == "" {
			handleError(w, r, &AppError{
				Code:    ErrCodePermissionDenied,
				Message: "missing " + ownerHeader + " header",
				Status:  http.StatusUnauthorized,
			})
			return
		}

		ctx := store.WithOwner(r.Context(), owner)
		ctx = logger.NewContext(ctx, logger.FromContext(ctx).With("owner", owner))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// owner returns the authenticated owner for the request. The middleware
// guarantees it is set on /api routes.
func (s *Server) owner(r *http.Request) string {
	return store.OwnerFrom(r.Context())
}

func generateRequestID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// loggingMiddleware logs each request with timing, status, and request ID.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = generateRequestID()
		}

		log := logger.Default().
			With("request_id", requestID).
			With("method", r.Method).
			With("path", r.URL.Path)

		r = r.WithContext(logger.NewContext(r.Context(), log))
		w.Header().Set("X-Request-ID", requestID)

		wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		log = log.With("status", wrapped.status).
			With("duration_ms", time.Since(start).Milliseconds())
		switch {
		case wrapped.status >= 500:
			log.Error("request failed")
		case wrapped.status >= 400:
			log.Warn("request rejected")
		default:
			log.Info("request completed")
		}
	})
}

// recoveryMiddleware recovers from handler panics.
func recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.FromContext(r.Context()).Error("panic recovered: %v", rec)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
