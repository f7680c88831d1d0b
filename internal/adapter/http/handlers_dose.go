package adapthttp

import (
	"net/http"

	"slimtrack/internal/domain"
)

func (s *Server) handleDoses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := sessionFrom(ctx)

	switch r.Method {
	case http.MethodGet:
		items, err := s.doses.ListForAccount(ctx, sess.AccountID())
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})

	case http.MethodPost:
		var req struct {
			Type   string  `json:"type"`
			DoseMg float64 `json:"doseMg"`
			Date   string  `json:"date"`
			Notes  string  `json:"notes"`
		}
		if err := parseJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		med, err := domain.ParseMedication(req.Type)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		d, err := dayOrToday(req.Date, s.now())
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		dose, err := s.doses.RecordDose(ctx, sess, domain.DoseInput{Type: med, DoseMg: req.DoseMg, Date: d, Notes: req.Notes})
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"dose": dose})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleDoseByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := s.doses.Delete(r.Context(), sessionFrom(r.Context()), r.PathValue("id")); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
