// Package app holds the application services and business logic.
package app

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"slimtrack/internal/domain"
)

// Session is the signed-in account as seen by one request or command. It
// carries a copy of the account; changes reach storage only through
// AuthService.
type Session struct {
	Account domain.Account
}

// AccountID returns the id of the signed-in account.
func (s *Session) AccountID() string { return s.Account.ID }

// TrialStatus is the derived subscription state of a session.
type TrialStatus struct {
	Subscribed  bool `json:"subscribed"`
	DaysOfTrial int  `json:"daysOfTrial"`
	DaysLeft    int  `json:"daysLeft"`
	Ending      bool `json:"ending"`
	Expired     bool `json:"expired"`
}

// RegisterInput is the registration form.
type RegisterInput struct {
	Name          string
	Email         string
	Password      string
	InitialWeight float64
	TargetWeight  float64
}

// AuthService manages the account directory and the active session.
type AuthService struct {
	accounts domain.AccountRepository
	sessions domain.SessionRepository
	log      *slog.Logger

	verifyPasswords bool
	passwordCost    int
	now             func() time.Time

	mu sync.Mutex
}

// AuthOption configures an AuthService.
type AuthOption func(*AuthService)

// WithPasswordVerification makes Login compare the password against the hash
// stored at registration.
func WithPasswordVerification(on bool) AuthOption {
	return func(s *AuthService) { s.verifyPasswords = on }
}

// WithPasswordCost sets the bcrypt cost used at registration.
func WithPasswordCost(cost int) AuthOption {
	return func(s *AuthService) { s.passwordCost = cost }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) AuthOption {
	return func(s *AuthService) { s.now = now }
}

// NewAuthService creates a new authentication service.
func NewAuthService(accounts domain.AccountRepository, sessions domain.SessionRepository, log *slog.Logger, opts ...AuthOption) *AuthService {
	if log == nil {
		log = slog.Default()
	}
	s := &AuthService{
		accounts:     accounts,
		sessions:     sessions,
		log:          log,
		passwordCost: bcrypt.DefaultCost,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates an account and signs it in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	if strings.TrimSpace(in.Email) == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.accounts.LoadAccounts(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := findByEmail(accounts, in.Email); ok {
		return nil, domain.ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword(passwordKey(in.Password), s.passwordCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	acct := domain.Account{
		ID:             uuid.NewString(),
		Email:          in.Email,
		Name:           in.Name,
		InitialWeight:  in.InitialWeight,
		TargetWeight:   in.TargetWeight,
		StartDate:      now,
		IsSubscribed:   false,
		TrialStartedAt: now,
		PasswordHash:   string(hash),
	}

	if err := s.accounts.SaveAccounts(ctx, append(accounts, acct)); err != nil {
		return nil, err
	}
	if err := s.sessions.SaveSession(ctx, acct); err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "account registered", "account_id", acct.ID)
	return &Session{Account: acct}, nil
}

// Login signs in the account registered with email.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.accounts.LoadAccounts(ctx)
	if err != nil {
		return nil, err
	}
	acct, ok := findByEmail(accounts, email)
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	if s.verifyPasswords && acct.PasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), passwordKey(password)); err != nil {
			return nil, domain.ErrInvalidCredentials
		}
	} else {
		s.log.WarnContext(ctx, "password accepted without verification", "account_id", acct.ID)
	}

	if err := s.sessions.SaveSession(ctx, acct); err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "signed in", "account_id", acct.ID)
	return &Session{Account: acct}, nil
}

// Logout ends the active session. The account is kept.
func (s *AuthService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions.ClearSession(ctx)
}

// Current restores the active session from storage.
func (s *AuthService) Current(ctx context.Context) (*Session, error) {
	acct, err := s.sessions.LoadSession(ctx)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, domain.ErrNoSession
	}
	return &Session{Account: *acct}, nil
}

// Authorize restores the active session and checks the trial window. When the
// trial is over the session is still returned alongside ErrTrialExpired so
// callers can offer the subscription.
func (s *AuthService) Authorize(ctx context.Context) (*Session, error) {
	sess, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	if sess.Account.IsTrialExpired(s.now()) {
		return sess, domain.ErrTrialExpired
	}
	return sess, nil
}

// Status derives the trial state of sess at the current time.
func (s *AuthService) Status(sess *Session) TrialStatus {
	now := s.now()
	a := sess.Account
	return TrialStatus{
		Subscribed:  a.IsSubscribed,
		DaysOfTrial: a.DaysOfTrial(now),
		DaysLeft:    a.TrialDaysLeft(now),
		Ending:      a.TrialEnding(now),
		Expired:     a.IsTrialExpired(now),
	}
}

// ToggleSubscription flips the subscription flag of the signed-in account and
// writes it to both the directory and the session record.
func (s *AuthService) ToggleSubscription(ctx context.Context, sess *Session) error {
	if sess == nil {
		return domain.ErrNoSession
	}
	updated := sess.Account
	updated.IsSubscribed = !updated.IsSubscribed
	if err := s.writeThrough(ctx, updated); err != nil {
		return err
	}
	sess.Account = updated
	s.log.InfoContext(ctx, "subscription changed", "account_id", updated.ID, "subscribed", updated.IsSubscribed)
	return nil
}

// UpdateProfile changes the initial and target weights of the signed-in
// account.
func (s *AuthService) UpdateProfile(ctx context.Context, sess *Session, initialWeight, targetWeight float64) error {
	if sess == nil {
		return domain.ErrNoSession
	}
	updated := sess.Account
	updated.InitialWeight = initialWeight
	updated.TargetWeight = targetWeight
	if err := s.writeThrough(ctx, updated); err != nil {
		return err
	}
	sess.Account = updated
	return nil
}

// UpdateAccount replaces the directory record with the same id.
func (s *AuthService) UpdateAccount(ctx context.Context, acct domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateAccount(ctx, acct)
}

func (s *AuthService) writeThrough(ctx context.Context, acct domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.updateAccount(ctx, acct); err != nil {
		return err
	}
	return s.sessions.SaveSession(ctx, acct)
}

func (s *AuthService) updateAccount(ctx context.Context, acct domain.Account) error {
	accounts, err := s.accounts.LoadAccounts(ctx)
	if err != nil {
		return err
	}
	idx := -1
	for i := range accounts {
		if accounts[i].ID == acct.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrAccountNotFound
	}
	accounts[idx] = acct
	return s.accounts.SaveAccounts(ctx, accounts)
}

// passwordKey is the bcrypt input for password. Passwords past bcrypt's
// 72-byte limit are digested first so every password can be stored.
func passwordKey(password string) []byte {
	if len(password) <= 72 {
		return []byte(password)
	}
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

func findByEmail(accounts []domain.Account, email string) (domain.Account, bool) {
	for _, a := range accounts {
		if a.Email == email {
			return a, true
		}
	}
	return domain.Account{}, false
}
