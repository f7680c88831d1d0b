package adapthttp

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"slimtrack/internal/app"
	"slimtrack/internal/domain"
)

func (s *Server) handleWeights(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := sessionFrom(ctx)

	switch r.Method {
	case http.MethodGet:
		items, err := s.weights.ListForAccount(ctx, sess.AccountID())
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})

	case http.MethodPost:
		in, err := s.weightInput(r)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		entry, err := s.weights.RecordWeight(ctx, sess, in)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"entry": entry})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// weightInput reads a weigh-in from a JSON body or, when a photo is
// attached, from a multipart form with weight, date and photo fields.
func (s *Server) weightInput(r *http.Request) (domain.WeightInput, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return s.weightInputMultipart(r)
	}

	var req struct {
		Weight   float64 `json:"weight"`
		Date     string  `json:"date"`
		PhotoURL string  `json:"photoUrl"`
	}
	if err := parseJSON(r, &req); err != nil {
		return domain.WeightInput{}, err
	}
	d, err := dayOrToday(req.Date, s.now())
	if err != nil {
		return domain.WeightInput{}, err
	}
	return domain.WeightInput{Weight: req.Weight, Date: d, PhotoURL: req.PhotoURL}, nil
}

func (s *Server) weightInputMultipart(r *http.Request) (domain.WeightInput, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, app.MaxPhotoBytes+1<<20)
	if err := r.ParseMultipartForm(app.MaxPhotoBytes); err != nil {
		return domain.WeightInput{}, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	weight, err := strconv.ParseFloat(r.FormValue("weight"), 64)
	if err != nil {
		return domain.WeightInput{}, fmt.Errorf("%w: weight must be a number", domain.ErrInvalidInput)
	}
	d, err := dayOrToday(r.FormValue("date"), s.now())
	if err != nil {
		return domain.WeightInput{}, err
	}
	in := domain.WeightInput{Weight: weight, Date: d}

	file, header, err := r.FormFile("photo")
	if errors.Is(err, http.ErrMissingFile) {
		return in, nil
	}
	if err != nil {
		return domain.WeightInput{}, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	defer file.Close() //nolint:errcheck

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "application/octet-stream" {
		mimeType = ""
	}
	in.PhotoURL, err = app.EncodePhoto(r.Context(), file, mimeType)
	if err != nil {
		return domain.WeightInput{}, err
	}
	return in, nil
}

func (s *Server) handleWeightByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := s.weights.Delete(r.Context(), sessionFrom(r.Context()), r.PathValue("id")); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
