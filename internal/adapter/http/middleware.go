package adapthttp

import (
	"context"
	"errors"
	"net/http"
	"time"

	"slimtrack/internal/app"
	"slimtrack/internal/domain"
)

type contextKey string

const sessionContextKey contextKey = "session"

func sessionFrom(ctx context.Context) *app.Session {
	sess, _ := ctx.Value(sessionContextKey).(*app.Session)
	return sess
}

// requireSession restores the active session. The trial window is not
// checked, so an expired account can still read its status and subscribe.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.auth.Current(r.Context())
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		ctx := context.WithValue(r.Context(), sessionContextKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAccess is requireSession plus the subscription wall.
func (s *Server) requireAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.auth.Authorize(r.Context())
		if errors.Is(err, domain.ErrTrialExpired) {
			writeJSON(w, http.StatusPaymentRequired, map[string]any{
				"error": err.Error(),
				"trial": s.auth.Status(sess),
			})
			return
		}
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		ctx := context.WithValue(r.Context(), sessionContextKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
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

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.InfoContext(r.Context(), "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
