// Package store persists the account directory, the active session and the
// two ledgers as whole JSON snapshots in a key-value store.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"slimtrack/internal/domain"
)

// Storage keys. Each holds one complete snapshot.
const (
	KeySession  = "slimtrack_active_user"
	KeyAccounts = "slimtrack_db_users"
	KeyWeights  = "slimtrack_db_weights"
	KeyDoses    = "slimtrack_db_doses"
)

// Snapshots implements the domain repositories on top of a KeyValueStore.
type Snapshots struct {
	kv  domain.KeyValueStore
	log *slog.Logger
}

// New creates a Snapshots backed by kv.
func New(kv domain.KeyValueStore, log *slog.Logger) *Snapshots {
	if log == nil {
		log = slog.Default()
	}
	return &Snapshots{kv: kv, log: log}
}

var (
	_ domain.AccountRepository = (*Snapshots)(nil)
	_ domain.SessionRepository = (*Snapshots)(nil)
	_ domain.WeightRepository  = (*Snapshots)(nil)
	_ domain.DoseRepository    = (*Snapshots)(nil)
)

// load reads key and decodes it. Malformed snapshots are logged and whatever
// survived validation is returned; only backend failures are errors.
func load[T any](ctx context.Context, s *Snapshots, key string, decode func([]byte) (T, error)) (T, error) {
	var zero T
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return zero, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return zero, nil
	}
	v, err := decode(raw)
	if err != nil {
		if !errors.Is(err, domain.ErrMalformedStorage) {
			return zero, err
		}
		s.log.WarnContext(ctx, "ignoring malformed snapshot data", "key", key, "err", err)
	}
	return v, nil
}

func save[T any](ctx context.Context, s *Snapshots, key string, items []T) error {
	raw, err := encodeList(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// --- AccountRepository ---

// LoadAccounts returns the account directory in stored order.
func (s *Snapshots) LoadAccounts(ctx context.Context) ([]domain.Account, error) {
	return load(ctx, s, KeyAccounts, DecodeAccounts)
}

// SaveAccounts overwrites the account directory.
func (s *Snapshots) SaveAccounts(ctx context.Context, accounts []domain.Account) error {
	return save(ctx, s, KeyAccounts, accounts)
}

// --- SessionRepository ---

// LoadSession returns the signed-in account, or nil.
func (s *Snapshots) LoadSession(ctx context.Context) (*domain.Account, error) {
	return load(ctx, s, KeySession, DecodeSession)
}

// SaveSession stores account as the active session.
func (s *Snapshots) SaveSession(ctx context.Context, account domain.Account) error {
	raw, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeySession, err)
	}
	if err := s.kv.Set(ctx, KeySession, raw); err != nil {
		return fmt.Errorf("save %s: %w", KeySession, err)
	}
	return nil
}

// ClearSession removes the active session record.
func (s *Snapshots) ClearSession(ctx context.Context) error {
	if err := s.kv.Remove(ctx, KeySession); err != nil {
		return fmt.Errorf("clear %s: %w", KeySession, err)
	}
	return nil
}

// --- WeightRepository ---

// LoadWeights returns the whole weight ledger in stored order.
func (s *Snapshots) LoadWeights(ctx context.Context) ([]domain.WeightEntry, error) {
	return load(ctx, s, KeyWeights, DecodeWeights)
}

// SaveWeights overwrites the weight ledger.
func (s *Snapshots) SaveWeights(ctx context.Context, entries []domain.WeightEntry) error {
	return save(ctx, s, KeyWeights, entries)
}

// --- DoseRepository ---

// LoadDoses returns the whole dose ledger in stored order.
func (s *Snapshots) LoadDoses(ctx context.Context) ([]domain.VaccineDose, error) {
	return load(ctx, s, KeyDoses, DecodeDoses)
}

// SaveDoses overwrites the dose ledger.
func (s *Snapshots) SaveDoses(ctx context.Context, doses []domain.VaccineDose) error {
	return save(ctx, s, KeyDoses, doses)
}
