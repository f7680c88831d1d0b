package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"slimtrack/internal/domain"
)

// decodeList parses a JSON array snapshot and validates every record.
// Records that fail are dropped and reported in the returned error, which
// wraps domain.ErrMalformedStorage. A payload that is not an array yields no
// records at all.
func decodeList[T any](raw []byte, validate func(T) error) ([]T, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedStorage, err)
	}

	out := make([]T, 0, len(items))
	var errs []error
	for i, item := range items {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			errs = append(errs, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		if err := validate(v); err != nil {
			errs = append(errs, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		out = append(out, v)
	}
	if len(errs) > 0 {
		return out, fmt.Errorf("%w: %w", domain.ErrMalformedStorage, errors.Join(errs...))
	}
	return out, nil
}

func encodeList[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	return json.Marshal(items)
}

// DecodeAccounts parses the accounts snapshot.
func DecodeAccounts(raw []byte) ([]domain.Account, error) {
	return decodeList(raw, validateAccount)
}

// DecodeWeights parses the weight ledger snapshot.
func DecodeWeights(raw []byte) ([]domain.WeightEntry, error) {
	return decodeList(raw, validateWeight)
}

// DecodeDoses parses the dose ledger snapshot.
func DecodeDoses(raw []byte) ([]domain.VaccineDose, error) {
	return decodeList(raw, validateDose)
}

// DecodeSession parses the active-session record.
func DecodeSession(raw []byte) (*domain.Account, error) {
	var a domain.Account
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedStorage, err)
	}
	if err := validateAccount(a); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedStorage, err)
	}
	return &a, nil
}

func validateAccount(a domain.Account) error {
	switch {
	case a.ID == "":
		return errors.New("account without id")
	case a.Email == "":
		return errors.New("account without email")
	case a.TrialStartedAt.IsZero():
		return errors.New("account without trial start")
	}
	return nil
}

func validateWeight(e domain.WeightEntry) error {
	switch {
	case e.ID == "":
		return errors.New("weight entry without id")
	case e.UserID == "":
		return errors.New("weight entry without owner")
	case e.Date.IsZero():
		return errors.New("weight entry without date")
	}
	return nil
}

func validateDose(d domain.VaccineDose) error {
	switch {
	case d.ID == "":
		return errors.New("dose without id")
	case d.UserID == "":
		return errors.New("dose without owner")
	case d.Date.IsZero():
		return errors.New("dose without date")
	case !d.Type.Valid():
		return fmt.Errorf("dose with unknown medication %q", d.Type)
	}
	return nil
}
