package app

import "slimtrack/internal/domain"

// LatestWeight is the last weigh-in of an ascending weight view, or the
// account's initial weight when there is none.
func LatestWeight(acct domain.Account, weights []domain.WeightEntry) float64 {
	if len(weights) == 0 {
		return acct.InitialWeight
	}
	return weights[len(weights)-1].Weight
}

// TotalLoss is the weight lost since registration; negative for a gain.
func TotalLoss(acct domain.Account, weights []domain.WeightEntry) float64 {
	return acct.InitialWeight - LatestWeight(acct, weights)
}

// ProgressPercent is the share of the goal reached, clamped to [0, 100].
// When the initial and target weights are equal the goal counts as reached
// (100) if latest is at or below the target, and not started (0) otherwise.
func ProgressPercent(initial, target, latest float64) float64 {
	if initial == target {
		if latest <= target {
			return 100
		}
		return 0
	}
	p := (initial - latest) / (initial - target) * 100
	return min(100, max(0, p))
}

// SeriesPoint is one chart sample.
type SeriesPoint struct {
	Label  string     `json:"label"`
	Date   domain.Day `json:"date"`
	Weight float64    `json:"weight"`
}

// ChartSeries maps an ascending weight view to chart samples, one per entry,
// converted to unit.
func ChartSeries(weights []domain.WeightEntry, unit domain.Unit) []SeriesPoint {
	out := make([]SeriesPoint, 0, len(weights))
	for _, w := range weights {
		out = append(out, SeriesPoint{
			Label:  w.Date.Label(),
			Date:   w.Date,
			Weight: domain.ConvertWeight(w.Weight, domain.UnitKG, unit),
		})
	}
	return out
}

// LastDose is the first dose of a descending dose view, or nil.
func LastDose(doses []domain.VaccineDose) *domain.VaccineDose {
	if len(doses) == 0 {
		return nil
	}
	d := doses[0]
	return &d
}
