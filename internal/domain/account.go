// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"time"
)

// TrialDays is the length of the free trial window.
const TrialDays = 7

// Account represents one registered end user.
type Account struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	InitialWeight  float64   `json:"initialWeight"`
	TargetWeight   float64   `json:"targetWeight"`
	StartDate      time.Time `json:"startDate"`
	IsSubscribed   bool      `json:"isSubscribed"`
	TrialStartedAt time.Time `json:"trialStartedAt"`
	PasswordHash   string    `json:"passwordHash,omitempty"`
}

// DaysOfTrial returns the number of whole days elapsed since the trial
// started, never less than zero.
func (a Account) DaysOfTrial(now time.Time) int {
	d := int(now.Sub(a.TrialStartedAt) / (24 * time.Hour))
	if d < 0 {
		return 0
	}
	return d
}

// IsTrialExpired reports whether an unsubscribed account is past the trial
// window.
func (a Account) IsTrialExpired(now time.Time) bool {
	return a.DaysOfTrial(now) >= TrialDays && !a.IsSubscribed
}

// TrialDaysLeft returns the number of free days remaining.
func (a Account) TrialDaysLeft(now time.Time) int {
	return max(0, TrialDays-a.DaysOfTrial(now))
}

// TrialEnding reports whether the trial is on its last day (or already over)
// for an unsubscribed account.
func (a Account) TrialEnding(now time.Time) bool {
	return !a.IsSubscribed && a.DaysOfTrial(now) >= TrialDays-1
}

// AccountRepository defines the port for the account directory snapshot.
type AccountRepository interface {
	LoadAccounts(ctx context.Context) ([]Account, error)
	SaveAccounts(ctx context.Context, accounts []Account) error
}

// SessionRepository defines the port for the persisted active session.
// LoadSession returns nil, nil when nobody is signed in.
type SessionRepository interface {
	LoadSession(ctx context.Context) (*Account, error)
	SaveSession(ctx context.Context, account Account) error
	ClearSession(ctx context.Context) error
}
