package adapthttp

import (
	"net/http"
	"strings"

	"liftit/internal/app"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	users    *app.UserStore
	sessions *app.SessionService
	metrics  *app.MetricsService
	log      logrus.FieldLogger
	webDir   string
}

// New creates a Server wired to the given application services. An empty
// webDir disables static file serving.
func New(users *app.UserStore, sessions *app.SessionService, metrics *app.MetricsService, log logrus.FieldLogger, webDir string) *Server {
	return &Server{users: users, sessions: sessions, metrics: metrics, log: log, webDir: webDir}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}).Methods(http.MethodGet)

	api.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", s.handleLogout).Methods(http.MethodPost)

	private := api.NewRoute().Subrouter()
	private.Use(s.authMiddleware)

	private.HandleFunc("/me", s.handleMe).Methods(http.MethodGet)
	private.HandleFunc("/me", s.handleUpdateMe).Methods(http.MethodPatch)

	private.HandleFunc("/progress/weight", s.handleAddWeight).Methods(http.MethodPost)
	private.HandleFunc("/progress/measurements", s.handleAddMeasurements).Methods(http.MethodPost)
	private.HandleFunc("/progress/workouts", s.handleAddWorkout).Methods(http.MethodPost)
	private.HandleFunc("/progress/nutrition", s.handleAddNutrition).Methods(http.MethodPost)

	private.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)
	private.HandleFunc("/macros", s.handleMacros).Methods(http.MethodGet)
	private.HandleFunc("/dashboard", s.handleDashboard).Methods(http.MethodGet)
	private.HandleFunc("/charts/{metric}", s.handleChart).Methods(http.MethodGet)

	if s.webDir != "" {
		r.PathPrefix("/").MatcherFunc(notAPI).Handler(spaFromDisk(s.webDir))
	}

	return s.loggingMiddleware(withNoCache(r))
}

// notAPI keeps unmatched /api requests out of the SPA fallback so they get
// 404 or 405 instead of index.html.
func notAPI(r *http.Request, _ *mux.RouteMatch) bool {
	return !strings.HasPrefix(r.URL.Path, "/api/")
}
