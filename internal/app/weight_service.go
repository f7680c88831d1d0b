package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"slimtrack/internal/domain"
)

// WeightService encapsulates weight-tracking use cases.
type WeightService struct {
	ledger ledger[domain.WeightEntry]
}

// NewWeightService creates a WeightService backed by the given repository.
func NewWeightService(repo domain.WeightRepository) *WeightService {
	return &WeightService{ledger: ledger[domain.WeightEntry]{
		load:  repo.LoadWeights,
		save:  repo.SaveWeights,
		id:    func(e domain.WeightEntry) string { return e.ID },
		owner: func(e domain.WeightEntry) string { return e.UserID },
	}}
}

// RecordWeight stamps a new weigh-in with an id and the session's account and
// stores it. Weight values are not range-checked.
func (s *WeightService) RecordWeight(ctx context.Context, sess *Session, in domain.WeightInput) (domain.WeightEntry, error) {
	if sess == nil {
		return domain.WeightEntry{}, domain.ErrNoSession
	}
	if in.Date.IsZero() {
		return domain.WeightEntry{}, fmt.Errorf("%w: date is required", domain.ErrInvalidInput)
	}
	entry := domain.WeightEntry{
		ID:       uuid.NewString(),
		UserID:   sess.AccountID(),
		Weight:   in.Weight,
		Date:     in.Date,
		PhotoURL: in.PhotoURL,
	}
	if err := s.ledger.add(ctx, entry); err != nil {
		return domain.WeightEntry{}, err
	}
	return entry, nil
}

// Delete removes one of the session account's weigh-ins.
func (s *WeightService) Delete(ctx context.Context, sess *Session, id string) error {
	if sess == nil {
		return domain.ErrNoSession
	}
	return s.ledger.remove(ctx, sess.AccountID(), id)
}

// ListForAccount returns the account's weigh-ins, oldest first.
func (s *WeightService) ListForAccount(ctx context.Context, accountID string) ([]domain.WeightEntry, error) {
	return s.ledger.list(ctx, accountID, func(a, b domain.WeightEntry) int {
		return a.Date.Compare(b.Date)
	})
}
