package domain

import "fmt"

// Unit is a body-weight unit. Ledgers store kilograms.
type Unit string

const (
	UnitKG Unit = "kg"
	UnitLB Unit = "lb"
)

const kgToLb = 2.2046226218

// ParseUnit accepts "kg" or "lb"; the empty string means kilograms.
func ParseUnit(s string) (Unit, error) {
	switch Unit(s) {
	case "", UnitKG:
		return UnitKG, nil
	case UnitLB:
		return UnitLB, nil
	}
	return "", fmt.Errorf("%w: unit must be \"kg\" or \"lb\"", ErrInvalidInput)
}

// ConvertWeight converts a weight value between units.
// Returns v unchanged if from == to or if the units are unrecognised.
func ConvertWeight(v float64, from, to Unit) float64 {
	if from == to {
		return v
	}
	if from == UnitKG && to == UnitLB {
		return v * kgToLb
	}
	if from == UnitLB && to == UnitKG {
		return v / kgToLb
	}
	return v
}
