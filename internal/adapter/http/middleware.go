package adapthttp

import (
	"context"
	"errors"
	"net/http"
	"time"

	"liftit/internal/app"
	"liftit/internal/domain"

	"github.com/sirupsen/logrus"
)

type contextKey string

const userContextKey contextKey = "user"

// authMiddleware resolves the session cookie to its user and stores it in the
// request context. Requests without a valid session get 401.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookie)
		if err != nil {
			writeError(w, http.StatusUnauthorized, app.ErrNoSession)
			return
		}

		user, err := s.sessions.Validate(r.Context(), cookie.Value)
		if errors.Is(err, app.ErrNoSession) {
			writeError(w, http.StatusUnauthorized, err)
			return
		}
		if err != nil {
			s.fail(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userFromContext(r *http.Request) *domain.User {
	user, _ := r.Context().Value(userContextKey).(*domain.User)
	return user
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// loggingMiddleware logs one line per request.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.log.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rec.status,
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("request")
	})
}
