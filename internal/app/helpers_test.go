package app_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"slimtrack/internal/adapter/memory"
	"slimtrack/internal/app"
	"slimtrack/internal/domain"
	"slimtrack/internal/store"
)

var discard = slog.New(slog.DiscardHandler)

// fakeClock is a settable time source.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func day(s string) domain.Day { return domain.MustParseDay(s) }

func ctx() context.Context { return context.Background() }

type env struct {
	kv      *memory.DB
	repo    *store.Snapshots
	clock   *fakeClock
	auth    *app.AuthService
	weights *app.WeightService
	doses   *app.DoseService
	dash    *app.DashboardService
}

func newEnv(t *testing.T, opts ...app.AuthOption) *env {
	t.Helper()
	kv := memory.New()
	repo := store.New(kv, discard)
	clock := newClock()
	opts = append([]app.AuthOption{app.WithClock(clock.Now), app.WithPasswordCost(bcrypt.MinCost)}, opts...)
	ws := app.NewWeightService(repo)
	ds := app.NewDoseService(repo)
	return &env{
		kv:      kv,
		repo:    repo,
		clock:   clock,
		auth:    app.NewAuthService(repo, repo, discard, opts...),
		weights: ws,
		doses:   ds,
		dash:    app.NewDashboardService(ws, ds),
	}
}

func (e *env) register(t *testing.T, name, email string, initial, target float64) *app.Session {
	t.Helper()
	sess, err := e.auth.Register(ctx(), app.RegisterInput{
		Name: name, Email: email, Password: "pw", InitialWeight: initial, TargetWeight: target,
	})
	if err != nil {
		t.Fatalf("Register(%s): %v", email, err)
	}
	return sess
}

func (e *env) raw(t *testing.T, key string) string {
	t.Helper()
	v, _, err := e.kv.Get(ctx(), key)
	if err != nil {
		t.Fatalf("Get(%s): %v", key, err)
	}
	return string(v)
}

// --- function-field mocks ---

type mockAccountRepo struct {
	loadFn func(ctx context.Context) ([]domain.Account, error)
	saveFn func(ctx context.Context, accounts []domain.Account) error
}

func (m *mockAccountRepo) LoadAccounts(ctx context.Context) ([]domain.Account, error) {
	if m.loadFn != nil {
		return m.loadFn(ctx)
	}
	return nil, nil
}

func (m *mockAccountRepo) SaveAccounts(ctx context.Context, accounts []domain.Account) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, accounts)
	}
	return nil
}

type mockSessionRepo struct {
	loadFn  func(ctx context.Context) (*domain.Account, error)
	saveFn  func(ctx context.Context, account domain.Account) error
	clearFn func(ctx context.Context) error
}

func (m *mockSessionRepo) LoadSession(ctx context.Context) (*domain.Account, error) {
	if m.loadFn != nil {
		return m.loadFn(ctx)
	}
	return nil, nil
}

func (m *mockSessionRepo) SaveSession(ctx context.Context, account domain.Account) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, account)
	}
	return nil
}

func (m *mockSessionRepo) ClearSession(ctx context.Context) error {
	if m.clearFn != nil {
		return m.clearFn(ctx)
	}
	return nil
}

type mockWeightRepo struct {
	loadFn func(ctx context.Context) ([]domain.WeightEntry, error)
	saveFn func(ctx context.Context, entries []domain.WeightEntry) error
}

func (m *mockWeightRepo) LoadWeights(ctx context.Context) ([]domain.WeightEntry, error) {
	if m.loadFn != nil {
		return m.loadFn(ctx)
	}
	return nil, nil
}

func (m *mockWeightRepo) SaveWeights(ctx context.Context, entries []domain.WeightEntry) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, entries)
	}
	return nil
}

type mockDoseRepo struct {
	loadFn func(ctx context.Context) ([]domain.VaccineDose, error)
	saveFn func(ctx context.Context, doses []domain.VaccineDose) error
}

func (m *mockDoseRepo) LoadDoses(ctx context.Context) ([]domain.VaccineDose, error) {
	if m.loadFn != nil {
		return m.loadFn(ctx)
	}
	return nil, nil
}

func (m *mockDoseRepo) SaveDoses(ctx context.Context, doses []domain.VaccineDose) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, doses)
	}
	return nil
}
