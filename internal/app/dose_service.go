package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"slimtrack/internal/domain"
)

// DoseService encapsulates medication-dose use cases.
type DoseService struct {
	ledger ledger[domain.VaccineDose]
}

// NewDoseService creates a DoseService backed by the given repository.
func NewDoseService(repo domain.DoseRepository) *DoseService {
	return &DoseService{ledger: ledger[domain.VaccineDose]{
		load:  repo.LoadDoses,
		save:  repo.SaveDoses,
		id:    func(d domain.VaccineDose) string { return d.ID },
		owner: func(d domain.VaccineDose) string { return d.UserID },
	}}
}

// RecordDose validates the medication type and stores a new dose for the
// session's account. Dose amounts are not range-checked.
func (s *DoseService) RecordDose(ctx context.Context, sess *Session, in domain.DoseInput) (domain.VaccineDose, error) {
	if sess == nil {
		return domain.VaccineDose{}, domain.ErrNoSession
	}
	if !in.Type.Valid() {
		return domain.VaccineDose{}, fmt.Errorf("%w: unknown medication %q", domain.ErrInvalidInput, in.Type)
	}
	if in.Date.IsZero() {
		return domain.VaccineDose{}, fmt.Errorf("%w: date is required", domain.ErrInvalidInput)
	}
	dose := domain.VaccineDose{
		ID:     uuid.NewString(),
		UserID: sess.AccountID(),
		Type:   in.Type,
		DoseMg: in.DoseMg,
		Date:   in.Date,
		Notes:  in.Notes,
	}
	if err := s.ledger.add(ctx, dose); err != nil {
		return domain.VaccineDose{}, err
	}
	return dose, nil
}

// Delete removes one of the session account's doses.
func (s *DoseService) Delete(ctx context.Context, sess *Session, id string) error {
	if sess == nil {
		return domain.ErrNoSession
	}
	return s.ledger.remove(ctx, sess.AccountID(), id)
}

// ListForAccount returns the account's doses, most recent first.
func (s *DoseService) ListForAccount(ctx context.Context, accountID string) ([]domain.VaccineDose, error) {
	return s.ledger.list(ctx, accountID, func(a, b domain.VaccineDose) int {
		return b.Date.Compare(a.Date)
	})
}
