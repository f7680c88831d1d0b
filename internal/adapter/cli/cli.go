// Package cli implements the command-line driving adapter.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/subcommands"
	"golang.org/x/term"

	"slimtrack/internal/app"
	"slimtrack/internal/domain"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// App holds the services the commands drive.
type App struct {
	Auth      *app.AuthService
	Weights   *app.WeightService
	Doses     *app.DoseService
	Dashboard *app.DashboardService

	Out io.Writer
	Err io.Writer
	Now func() time.Time
}

// Register adds every account and ledger command to c.
func Register(c *subcommands.Commander, a *App) {
	if a.Out == nil {
		a.Out = os.Stdout
	}
	if a.Err == nil {
		a.Err = os.Stderr
	}
	if a.Now == nil {
		a.Now = time.Now
	}

	c.Register(&registerCmd{app: a}, "account")
	c.Register(&loginCmd{app: a}, "account")
	c.Register(&logoutCmd{app: a}, "account")
	c.Register(&statusCmd{app: a}, "account")
	c.Register(&subscribeCmd{app: a}, "account")
	c.Register(&profileCmd{app: a}, "account")

	c.Register(&addWeightCmd{app: a}, "ledger")
	c.Register(&listWeightsCmd{app: a}, "ledger")
	c.Register(&rmWeightCmd{app: a}, "ledger")
	c.Register(&addDoseCmd{app: a}, "ledger")
	c.Register(&listDosesCmd{app: a}, "ledger")
	c.Register(&rmDoseCmd{app: a}, "ledger")
	c.Register(&dashboardCmd{app: a}, "ledger")
}

// fail prints err with a hint for the errors a user can act on.
func (a *App) fail(err error) subcommands.ExitStatus {
	switch {
	case errors.Is(err, domain.ErrNoSession):
		fmt.Fprintln(a.Err, "not signed in: run `slimtrack login` or `slimtrack register`")
	case errors.Is(err, domain.ErrTrialExpired):
		fmt.Fprintln(a.Err, "your free trial has ended: run `slimtrack subscribe` to continue")
	default:
		fmt.Fprintln(a.Err, "error:", err)
	}
	return subcommands.ExitFailure
}

// password returns flagValue or prompts for one without echo.
func (a *App) password(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if _, err := fmt.Fprint(a.Err, "Enter password: "); err != nil {
		return "", err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(a.Err)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(pw), nil
}

func (a *App) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.Out, 0, 0, 2, ' ', 0)
}

// dayOrToday parses a -date flag; empty means today.
func (a *App) dayOrToday(s string) (domain.Day, error) {
	if s == "" {
		return domain.NewDay(a.Now()), nil
	}
	d, err := domain.ParseDay(s)
	if err != nil {
		return domain.Day{}, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return d, nil
}

// isSet reports whether the flag called name was given on the command line.
func isSet(f *flag.FlagSet, name string) bool {
	set := false
	f.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			set = true
		}
	})
	return set
}

func (a *App) usage(msg string) subcommands.ExitStatus {
	fmt.Fprintln(a.Err, msg)
	return subcommands.ExitUsageError
}

func formatWeight(v float64, unit domain.Unit) string {
	return fmt.Sprintf("%.1f %s", v, unit)
}
