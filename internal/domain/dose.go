package domain

import (
	"context"
	"fmt"
	"strings"
)

// Medication is the injectable administered in a dose.
type Medication string

const (
	MedicationOzempic  Medication = "Ozempic"
	MedicationMounjaro Medication = "Mounjaro"
)

// Medications lists every accepted medication.
var Medications = []Medication{MedicationOzempic, MedicationMounjaro}

// Valid reports whether m is one of Medications.
func (m Medication) Valid() bool {
	for _, v := range Medications {
		if m == v {
			return true
		}
	}
	return false
}

// ParseMedication matches s case-insensitively against Medications.
func ParseMedication(s string) (Medication, error) {
	for _, v := range Medications {
		if strings.EqualFold(strings.TrimSpace(s), string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: unknown medication %q", ErrInvalidInput, s)
}

// VaccineDose represents one medication administration.
type VaccineDose struct {
	ID     string     `json:"id"`
	UserID string     `json:"userId"`
	Type   Medication `json:"type"`
	DoseMg float64    `json:"doseMg"`
	Date   Day        `json:"date"`
	Notes  string     `json:"notes,omitempty"`
}

// DoseInput is a dose before it is stamped with an id and an owner.
type DoseInput struct {
	Type   Medication
	DoseMg float64
	Date   Day
	Notes  string
}

// DoseRepository is the port for the dose ledger snapshot.
type DoseRepository interface {
	LoadDoses(ctx context.Context) ([]VaccineDose, error)
	SaveDoses(ctx context.Context, doses []VaccineDose) error
}
