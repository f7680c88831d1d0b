package app_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"slimtrack/internal/app"
	"slimtrack/internal/domain"
)

func TestGetDashboard_Scenario(t *testing.T) {
	e := newEnv(t)
	sess := e.register(t, "Ana", "ana@x.com", 80, 70)

	empty, err := e.dash.GetDashboard(ctx(), sess, domain.UnitKG)
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}
	if empty.LatestWeight != 80 || empty.TotalLoss != 0 || empty.ProgressPercent != 0 {
		t.Errorf("unexpected empty dashboard: %+v", empty)
	}
	if empty.ChartReady || empty.LastDose != nil || len(empty.Series) != 0 {
		t.Errorf("empty dashboard should have no chart or dose: %+v", empty)
	}

	_, _ = e.weights.RecordWeight(ctx(), sess, domain.WeightInput{Weight: 75, Date: day("2026-03-08")})
	_, _ = e.weights.RecordWeight(ctx(), sess, domain.WeightInput{Weight: 78, Date: day("2026-03-02")})
	_, _ = e.doses.RecordDose(ctx(), sess, domain.DoseInput{Type: domain.MedicationMounjaro, DoseMg: 2.5, Date: day("2026-03-01")})
	_, _ = e.doses.RecordDose(ctx(), sess, domain.DoseInput{Type: domain.MedicationMounjaro, DoseMg: 5, Date: day("2026-03-08")})

	d, err := e.dash.GetDashboard(ctx(), sess, domain.UnitKG)
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}
	if d.LatestWeight != 75 || d.TotalLoss != 5 || d.ProgressPercent != 50 {
		t.Errorf("expected latest 75, loss 5, progress 50; got %v, %v, %v", d.LatestWeight, d.TotalLoss, d.ProgressPercent)
	}
	if !d.ChartReady || len(d.Series) != 2 || d.Series[0].Weight != 78 {
		t.Errorf("unexpected series: %+v", d.Series)
	}
	if d.LastDose == nil || d.LastDose.DoseMg != 5 {
		t.Errorf("unexpected last dose: %+v", d.LastDose)
	}
	if d.WeightCount != 2 || d.DoseCount != 2 {
		t.Errorf("unexpected counts: %d weights, %d doses", d.WeightCount, d.DoseCount)
	}
}

func TestGetDashboard_Pounds(t *testing.T) {
	e := newEnv(t)
	sess := e.register(t, "Ana", "ana@x.com", 80, 70)
	_, _ = e.weights.RecordWeight(ctx(), sess, domain.WeightInput{Weight: 75, Date: day("2026-03-02")})

	d, err := e.dash.GetDashboard(ctx(), sess, domain.UnitLB)
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}
	const kgToLb = 2.2046226218
	if math.Abs(d.LatestWeight-75*kgToLb) > 1e-9 || math.Abs(d.InitialWeight-80*kgToLb) > 1e-9 {
		t.Errorf("weights not converted: %+v", d)
	}
	if d.ProgressPercent != 50 {
		t.Errorf("progress must not depend on display unit, got %v", d.ProgressPercent)
	}
	if d.Unit != domain.UnitLB {
		t.Errorf("expected unit lb, got %s", d.Unit)
	}
}

func TestGetDashboard_Errors(t *testing.T) {
	boom := errors.New("db down")
	ws := app.NewWeightService(&mockWeightRepo{
		loadFn: func(_ context.Context) ([]domain.WeightEntry, error) { return nil, boom },
	})
	ds := app.NewDoseService(&mockDoseRepo{})
	svc := app.NewDashboardService(ws, ds)

	if _, err := svc.GetDashboard(ctx(), nil, domain.UnitKG); !errors.Is(err, domain.ErrNoSession) {
		t.Errorf("expected ErrNoSession, got %v", err)
	}
	sess := &app.Session{Account: domain.Account{ID: "a1"}}
	if _, err := svc.GetDashboard(ctx(), sess, domain.UnitKG); !errors.Is(err, boom) {
		t.Errorf("expected repo error, got %v", err)
	}
}
