package app_test

import (
	"context"
	"errors"
	"testing"

	"slimtrack/internal/app"
	"slimtrack/internal/domain"
	"slimtrack/internal/store"
)

func TestRecordDose(t *testing.T) {
	e := newEnv(t)
	sess := e.register(t, "Ana", "ana@x.com", 80, 70)

	got, err := e.doses.RecordDose(ctx(), sess, domain.DoseInput{
		Type: domain.MedicationOzempic, DoseMg: 0.25, Date: day("2026-03-01"), Notes: "first",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID == "" || got.UserID != sess.AccountID() || got.Notes != "first" {
		t.Fatalf("unexpected dose: %+v", got)
	}
}

func TestRecordDose_Validation(t *testing.T) {
	e := newEnv(t)
	sess := e.register(t, "Ana", "ana@x.com", 80, 70)

	tests := []struct {
		name string
		in   domain.DoseInput
	}{
		{"unknown medication", domain.DoseInput{Type: "Aspirin", DoseMg: 1, Date: day("2026-03-01")}},
		{"empty medication", domain.DoseInput{DoseMg: 1, Date: day("2026-03-01")}},
		{"missing date", domain.DoseInput{Type: domain.MedicationMounjaro, DoseMg: 2.5}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.doses.RecordDose(ctx(), sess, tc.in)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
	if _, ok, _ := e.kv.Get(ctx(), store.KeyDoses); ok {
		t.Error("rejected doses must not be written")
	}
}

func TestListDoses_MostRecentFirst(t *testing.T) {
	e := newEnv(t)
	ana := e.register(t, "Ana", "ana@x.com", 80, 70)
	bo := e.register(t, "Bo", "bo@x.com", 90, 80)

	record := func(sess *app.Session, mg float64, d string) {
		t.Helper()
		if _, err := e.doses.RecordDose(ctx(), sess, domain.DoseInput{Type: domain.MedicationMounjaro, DoseMg: mg, Date: day(d)}); err != nil {
			t.Fatalf("RecordDose: %v", err)
		}
	}
	record(ana, 2.5, "2026-03-01")
	record(ana, 7.5, "2026-03-15")
	record(bo, 5, "2026-03-20")
	record(ana, 5, "2026-03-08")

	list, err := e.doses.ListForAccount(ctx(), ana.AccountID())
	if err != nil {
		t.Fatalf("ListForAccount: %v", err)
	}
	want := []float64{7.5, 5, 2.5}
	if len(list) != len(want) {
		t.Fatalf("expected %d doses, got %d", len(want), len(list))
	}
	for i, mg := range want {
		if list[i].DoseMg != mg {
			t.Errorf("dose %d: got %v, want %v", i, list[i].DoseMg, mg)
		}
	}
}

func TestDeleteDose(t *testing.T) {
	e := newEnv(t)
	ana := e.register(t, "Ana", "ana@x.com", 80, 70)
	bo := e.register(t, "Bo", "bo@x.com", 90, 80)

	d, _ := e.doses.RecordDose(ctx(), ana, domain.DoseInput{Type: domain.MedicationOzempic, DoseMg: 0.5, Date: day("2026-03-01")})

	if err := e.doses.Delete(ctx(), bo, d.ID); !errors.Is(err, domain.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if err := e.doses.Delete(ctx(), ana, d.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := e.doses.Delete(ctx(), ana, d.ID); !errors.Is(err, domain.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound on second delete, got %v", err)
	}
	if got := e.raw(t, store.KeyDoses); got != "[]" {
		t.Errorf("expected empty ledger, got %s", got)
	}
}

func TestDeleteDose_RepoError(t *testing.T) {
	repo := &mockDoseRepo{
		loadFn: func(_ context.Context) ([]domain.VaccineDose, error) { return nil, errors.New("db down") },
	}
	svc := app.NewDoseService(repo)
	sess := &app.Session{Account: domain.Account{ID: "a1"}}
	if err := svc.Delete(ctx(), sess, "d1"); err == nil {
		t.Fatal("expected error")
	}
}
