package app

import (
	"context"

	"slimtrack/internal/domain"
)

type weightLister interface {
	ListForAccount(ctx context.Context, accountID string) ([]domain.WeightEntry, error)
}

type doseLister interface {
	ListForAccount(ctx context.Context, accountID string) ([]domain.VaccineDose, error)
}

// DashboardService derives the summary views of the signed-in account.
type DashboardService struct {
	weights weightLister
	doses   doseLister
}

// NewDashboardService creates a DashboardService reading the given ledgers.
func NewDashboardService(weights weightLister, doses doseLister) *DashboardService {
	return &DashboardService{weights: weights, doses: doses}
}

// Dashboard is the summary shown on the home screen. Weights are in Unit.
type Dashboard struct {
	Unit            domain.Unit         `json:"unit"`
	InitialWeight   float64             `json:"initialWeight"`
	TargetWeight    float64             `json:"targetWeight"`
	LatestWeight    float64             `json:"latestWeight"`
	TotalLoss       float64             `json:"totalLoss"`
	ProgressPercent float64             `json:"progressPercent"`
	Series          []SeriesPoint       `json:"series"`
	ChartReady      bool                `json:"chartReady"`
	LastDose        *domain.VaccineDose `json:"lastDose"`
	WeightCount     int                 `json:"weightCount"`
	DoseCount       int                 `json:"doseCount"`
}

// GetDashboard builds the dashboard for sess in the requested unit.
func (s *DashboardService) GetDashboard(ctx context.Context, sess *Session, unit domain.Unit) (*Dashboard, error) {
	if sess == nil {
		return nil, domain.ErrNoSession
	}
	weights, err := s.weights.ListForAccount(ctx, sess.AccountID())
	if err != nil {
		return nil, err
	}
	doses, err := s.doses.ListForAccount(ctx, sess.AccountID())
	if err != nil {
		return nil, err
	}

	acct := sess.Account
	latest := LatestWeight(acct, weights)
	conv := func(v float64) float64 { return domain.ConvertWeight(v, domain.UnitKG, unit) }

	return &Dashboard{
		Unit:            unit,
		InitialWeight:   conv(acct.InitialWeight),
		TargetWeight:    conv(acct.TargetWeight),
		LatestWeight:    conv(latest),
		TotalLoss:       conv(TotalLoss(acct, weights)),
		ProgressPercent: ProgressPercent(acct.InitialWeight, acct.TargetWeight, latest),
		Series:          ChartSeries(weights, unit),
		ChartReady:      len(weights) >= 2,
		LastDose:        LastDose(doses),
		WeightCount:     len(weights),
		DoseCount:       len(doses),
	}, nil
}
