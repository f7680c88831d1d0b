package domain

import (
	"context"
)

// WeightEntry represents a single weigh-in.
type WeightEntry struct {
	ID       string  `json:"id"`
	UserID   string  `json:"userId"`
	Weight   float64 `json:"weight"`
	Date     Day     `json:"date"`
	PhotoURL string  `json:"photoUrl,omitempty"`
}

// WeightInput is a weigh-in before it is stamped with an id and an owner.
type WeightInput struct {
	Weight   float64
	Date     Day
	PhotoURL string
}

// WeightRepository is the port for the weight ledger snapshot.
type WeightRepository interface {
	LoadWeights(ctx context.Context) ([]WeightEntry, error)
	SaveWeights(ctx context.Context, entries []WeightEntry) error
}
