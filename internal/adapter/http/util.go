package adapthttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"slimtrack/internal/app"
	"slimtrack/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"error": err.Error()})
}

// statusFor maps a service error to an HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNoSession), errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrTrialExpired):
		return http.StatusPaymentRequired
	case errors.Is(err, domain.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrAccountNotFound), errors.Is(err, domain.ErrEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeError(w, status, errors.New("internal error"))
		return
	}
	writeError(w, status, err)
}

func parseJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid json: %w", domain.ErrInvalidInput, err)
	}
	return nil
}

// dayOrToday parses a form date; an empty value means today.
func dayOrToday(s string, now time.Time) (domain.Day, error) {
	if strings.TrimSpace(s) == "" {
		return domain.NewDay(now), nil
	}
	d, err := domain.ParseDay(s)
	if err != nil {
		return domain.Day{}, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return d, nil
}

// accountView is an account as shown to clients.
type accountView struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	InitialWeight  float64   `json:"initialWeight"`
	TargetWeight   float64   `json:"targetWeight"`
	StartDate      time.Time `json:"startDate"`
	IsSubscribed   bool      `json:"isSubscribed"`
	TrialStartedAt time.Time `json:"trialStartedAt"`
}

func (s *Server) sessionBody(sess *app.Session) map[string]any {
	a := sess.Account
	return map[string]any{
		"account": accountView{
			ID:             a.ID,
			Email:          a.Email,
			Name:           a.Name,
			InitialWeight:  a.InitialWeight,
			TargetWeight:   a.TargetWeight,
			StartDate:      a.StartDate,
			IsSubscribed:   a.IsSubscribed,
			TrialStartedAt: a.TrialStartedAt,
		},
		"trial": s.auth.Status(sess),
	}
}

func withNoCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

func spaFromDisk(dir string) http.Handler {
	fileServer := http.FileServer(http.Dir(dir))
	indexPath := path.Join(dir, "index.html")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqPath := path.Clean(r.URL.Path)
		if reqPath == "/" {
			http.ServeFile(w, r, indexPath)
			return
		}

		staticPath := path.Join(dir, reqPath)
		if _, err := os.Stat(staticPath); err == nil {
			fileServer.ServeHTTP(w, r)
			return
		}

		http.ServeFile(w, r, indexPath)
	})
}
