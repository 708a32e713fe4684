// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"net/http"
	"time"

	"liftit/internal/app"
	"liftit/internal/domain"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req app.Registration
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	token, user, err := s.sessions.Register(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.setSessionCookie(w, token)
	writeOK(w, "registration successful", map[string]any{"user": user.Public()})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	token, user, err := s.sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.setSessionCookie(w, token)
	writeOK(w, "login successful", map[string]any{"user": user.Public()})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		if err := s.sessions.Logout(r.Context(), cookie.Value); err != nil {
			s.fail(w, r, err)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	writeOK(w, "logged out", nil)
}

const sessionCookie = "session"

func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(s.sessions.TTL() / time.Second),
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	writeOK(w, "ok", map[string]any{"user": user.Public()})
}

func (s *Server) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	var patch domain.UserPatch
	if err := parseJSON(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	user, err := s.users.UpdateUser(r.Context(), userFromContext(r).ID, patch)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeOK(w, "profile updated", map[string]any{"user": user.Public()})
}

// fail writes err with the status it maps to. Unexpected errors are logged
// and reported without detail.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.WithError(err).WithField("path", r.URL.Path).Error("request failed")
		writeJSON(w, status, map[string]any{"success": false, "message": "internal error"})
		return
	}
	writeError(w, status, err)
}
