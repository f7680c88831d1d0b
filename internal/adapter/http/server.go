package adapthttp

import (
	"log/slog"
	"net/http"
	"time"

	"slimtrack/internal/app"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	auth      *app.AuthService
	weights   *app.WeightService
	doses     *app.DoseService
	dashboard *app.DashboardService
	webDir    string
	log       *slog.Logger
	now       func() time.Time
}

// New creates a Server wired to the given application services.
func New(auth *app.AuthService, ws *app.WeightService, ds *app.DoseService, dash *app.DashboardService, webDir string, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		auth:      auth,
		weights:   ws,
		doses:     ds,
		dashboard: dash,
		webDir:    webDir,
		log:       log,
		now:       time.Now,
	}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	api.HandleFunc("/auth/register", s.handleRegister)
	api.HandleFunc("/auth/login", s.handleLogin)
	api.HandleFunc("/auth/logout", s.handleLogout)

	api.Handle("/session", s.requireSession(http.HandlerFunc(s.handleSession)))
	api.Handle("/session/subscription", s.requireSession(http.HandlerFunc(s.handleSubscription)))
	api.Handle("/session/profile", s.requireSession(http.HandlerFunc(s.handleProfile)))

	api.Handle("/weights", s.requireAccess(http.HandlerFunc(s.handleWeights)))
	api.Handle("/weights/{id}", s.requireAccess(http.HandlerFunc(s.handleWeightByID)))
	api.Handle("/doses", s.requireAccess(http.HandlerFunc(s.handleDoses)))
	api.Handle("/doses/{id}", s.requireAccess(http.HandlerFunc(s.handleDoseByID)))
	api.Handle("/dashboard", s.requireAccess(http.HandlerFunc(s.handleDashboard)))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	root.Handle("/", spaFromDisk(s.webDir))

	return s.loggingMiddleware(withNoCache(root))
}
