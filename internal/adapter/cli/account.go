package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"slimtrack/internal/app"
)

type registerCmd struct {
	app      *App
	name     string
	email    string
	password string
	initial  float64
	target   float64
}

func (*registerCmd) Name() string     { return "register" }
func (*registerCmd) Synopsis() string { return "create an account and sign in" }
func (*registerCmd) Usage() string {
	return `slimtrack register -email <email> -name <name> -initial <kg> -target <kg> [-password <pw>]

  Creates an account with a 7-day free trial and signs it in. The password
  is prompted for when -password is not given.
`
}

func (c *registerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Display name.")
	f.StringVar(&c.email, "email", "", "Email address used to sign in.")
	f.StringVar(&c.password, "password", "", "Password (prompted when empty).")
	f.Float64Var(&c.initial, "initial", 0, "Starting weight in kg.")
	f.Float64Var(&c.target, "target", 0, "Goal weight in kg.")
}

func (c *registerCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.email == "" {
		return c.app.usage("register: -email is required")
	}
	pw, err := c.app.password(c.password)
	if err != nil {
		return c.app.fail(err)
	}
	sess, err := c.app.Auth.Register(ctx, app.RegisterInput{
		Name:          c.name,
		Email:         c.email,
		Password:      pw,
		InitialWeight: c.initial,
		TargetWeight:  c.target,
	})
	if err != nil {
		return c.app.fail(err)
	}
	fmt.Fprintf(c.app.Out, "Welcome, %s! Your free trial has started.\n", sess.Account.Name)
	return subcommands.ExitSuccess
}

type loginCmd struct {
	app      *App
	email    string
	password string
}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "sign in to an existing account" }
func (*loginCmd) Usage() string {
	return `slimtrack login -email <email> [-password <pw>]
`
}

func (c *loginCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.email, "email", "", "Email address of the account.")
	f.StringVar(&c.password, "password", "", "Password (prompted when empty).")
}

func (c *loginCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.email == "" {
		return c.app.usage("login: -email is required")
	}
	pw, err := c.app.password(c.password)
	if err != nil {
		return c.app.fail(err)
	}
	sess, err := c.app.Auth.Login(ctx, c.email, pw)
	if err != nil {
		return c.app.fail(err)
	}
	fmt.Fprintf(c.app.Out, "Signed in as %s.\n", sess.Account.Email)
	return subcommands.ExitSuccess
}

type logoutCmd struct{ app *App }

func (*logoutCmd) Name() string             { return "logout" }
func (*logoutCmd) Synopsis() string         { return "end the current session" }
func (*logoutCmd) Usage() string            { return "slimtrack logout\n" }
func (*logoutCmd) SetFlags(_ *flag.FlagSet) {}

func (c *logoutCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.app.Auth.Logout(ctx); err != nil {
		return c.app.fail(err)
	}
	fmt.Fprintln(c.app.Out, "Signed out.")
	return subcommands.ExitSuccess
}

type statusCmd struct{ app *App }

func (*statusCmd) Name() string             { return "status" }
func (*statusCmd) Synopsis() string         { return "show the signed-in account and trial state" }
func (*statusCmd) Usage() string            { return "slimtrack status\n" }
func (*statusCmd) SetFlags(_ *flag.FlagSet) {}

func (c *statusCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	sess, err := c.app.Auth.Current(ctx)
	if err != nil {
		return c.app.fail(err)
	}
	st := c.app.Auth.Status(sess)
	a := sess.Account

	tw := c.app.table()
	fmt.Fprintf(tw, "Name\t%s\n", a.Name)
	fmt.Fprintf(tw, "Email\t%s\n", a.Email)
	fmt.Fprintf(tw, "Initial weight\t%.1f kg\n", a.InitialWeight)
	fmt.Fprintf(tw, "Target weight\t%.1f kg\n", a.TargetWeight)
	switch {
	case st.Subscribed:
		fmt.Fprintf(tw, "Plan\tsubscribed\n")
	case st.Expired:
		fmt.Fprintf(tw, "Plan\ttrial expired after %d days\n", st.DaysOfTrial)
	default:
		fmt.Fprintf(tw, "Plan\ttrial, %d of 7 days left\n", st.DaysLeft)
	}
	_ = tw.Flush()

	if st.Ending && !st.Expired {
		fmt.Fprintln(c.app.Out, "Your trial ends soon. Run `slimtrack subscribe` to keep access.")
	}
	return subcommands.ExitSuccess
}

type subscribeCmd struct{ app *App }

func (*subscribeCmd) Name() string             { return "subscribe" }
func (*subscribeCmd) Synopsis() string         { return "toggle the subscription of the signed-in account" }
func (*subscribeCmd) Usage() string            { return "slimtrack subscribe\n" }
func (*subscribeCmd) SetFlags(_ *flag.FlagSet) {}

func (c *subscribeCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	sess, err := c.app.Auth.Current(ctx)
	if err != nil {
		return c.app.fail(err)
	}
	if err := c.app.Auth.ToggleSubscription(ctx, sess); err != nil {
		return c.app.fail(err)
	}
	if sess.Account.IsSubscribed {
		fmt.Fprintln(c.app.Out, "Subscription active.")
	} else {
		fmt.Fprintln(c.app.Out, "Subscription cancelled.")
	}
	return subcommands.ExitSuccess
}

type profileCmd struct {
	app     *App
	initial float64
	target  float64
}

func (*profileCmd) Name() string     { return "profile" }
func (*profileCmd) Synopsis() string { return "change the initial and target weights" }
func (*profileCmd) Usage() string {
	return `slimtrack profile [-initial <kg>] [-target <kg>]

  Flags left out keep their current value.
`
}

func (c *profileCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.initial, "initial", 0, "Starting weight in kg.")
	f.Float64Var(&c.target, "target", 0, "Goal weight in kg.")
}

func (c *profileCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	sess, err := c.app.Auth.Current(ctx)
	if err != nil {
		return c.app.fail(err)
	}
	initial, target := sess.Account.InitialWeight, sess.Account.TargetWeight
	if isSet(f, "initial") {
		initial = c.initial
	}
	if isSet(f, "target") {
		target = c.target
	}
	if err := c.app.Auth.UpdateProfile(ctx, sess, initial, target); err != nil {
		return c.app.fail(err)
	}
	fmt.Fprintf(c.app.Out, "Profile updated: %.1f kg -> %.1f kg.\n", initial, target)
	return subcommands.ExitSuccess
}
