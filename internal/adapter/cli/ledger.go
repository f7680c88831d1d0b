package cli

import (
	"context"
	"flag"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/google/subcommands"

	"slimtrack/internal/app"
	"slimtrack/internal/domain"
)

type addWeightCmd struct {
	app    *App
	weight float64
	date   string
	photo  string
}

func (*addWeightCmd) Name() string     { return "add-weight" }
func (*addWeightCmd) Synopsis() string { return "record a weigh-in" }
func (*addWeightCmd) Usage() string {
	return `slimtrack add-weight -weight <kg> [-date YYYY-MM-DD] [-photo <file>]

  Records a weigh-in for the signed-in account. The date defaults to today.
`
}

func (c *addWeightCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.weight, "weight", 0, "Weight in kg.")
	f.StringVar(&c.date, "date", "", "Date of the weigh-in (defaults to today).")
	f.StringVar(&c.photo, "photo", "", "Optional progress photo to attach.")
}

func (c *addWeightCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !isSet(f, "weight") {
		return c.app.usage("add-weight: -weight is required")
	}
	sess, err := c.app.Auth.Authorize(ctx)
	if err != nil {
		return c.app.fail(err)
	}
	d, err := c.app.dayOrToday(c.date)
	if err != nil {
		return c.app.fail(err)
	}
	in := domain.WeightInput{Weight: c.weight, Date: d}
	if c.photo != "" {
		if in.PhotoURL, err = readPhoto(ctx, c.photo); err != nil {
			return c.app.fail(err)
		}
	}
	entry, err := c.app.Weights.RecordWeight(ctx, sess, in)
	if err != nil {
		return c.app.fail(err)
	}
	fmt.Fprintf(c.app.Out, "Recorded %.1f kg on %s (%s).\n", entry.Weight, entry.Date, entry.ID)
	return subcommands.ExitSuccess
}

func readPhoto(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open photo: %w", err)
	}
	defer f.Close() //nolint:errcheck
	return app.EncodePhoto(ctx, f, mime.TypeByExtension(filepath.Ext(path)))
}

type listWeightsCmd struct{ app *App }

func (*listWeightsCmd) Name() string             { return "weights" }
func (*listWeightsCmd) Synopsis() string         { return "list weigh-ins, oldest first" }
func (*listWeightsCmd) Usage() string            { return "slimtrack weights\n" }
func (*listWeightsCmd) SetFlags(_ *flag.FlagSet) {}

func (c *listWeightsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	sess, err := c.app.Auth.Authorize(ctx)
	if err != nil {
		return c.app.fail(err)
	}
	items, err := c.app.Weights.ListForAccount(ctx, sess.AccountID())
	if err != nil {
		return c.app.fail(err)
	}
	if len(items) == 0 {
		fmt.Fprintln(c.app.Out, "No weigh-ins yet.")
		return subcommands.ExitSuccess
	}

	tw := c.app.table()
	fmt.Fprintln(tw, "DATE\tWEIGHT\tPHOTO\tID")
	for _, e := range items {
		photo := ""
		if e.PhotoURL != "" {
			photo = "yes"
		}
		fmt.Fprintf(tw, "%s\t%.1f\t%s\t%s\n", e.Date, e.Weight, photo, e.ID)
	}
	_ = tw.Flush()
	return subcommands.ExitSuccess
}

type rmWeightCmd struct{ app *App }

func (*rmWeightCmd) Name() string             { return "rm-weight" }
func (*rmWeightCmd) Synopsis() string         { return "delete a weigh-in" }
func (*rmWeightCmd) Usage() string            { return "slimtrack rm-weight <id>\n" }
func (*rmWeightCmd) SetFlags(_ *flag.FlagSet) {}

func (c *rmWeightCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.app.usage("rm-weight: expected exactly one id")
	}
	sess, err := c.app.Auth.Authorize(ctx)
	if err != nil {
		return c.app.fail(err)
	}
	if err := c.app.Weights.Delete(ctx, sess, f.Arg(0)); err != nil {
		return c.app.fail(err)
	}
	fmt.Fprintln(c.app.Out, "Deleted.")
	return subcommands.ExitSuccess
}

type addDoseCmd struct {
	app   *App
	kind  string
	mg    float64
	date  string
	notes string
}

func (*addDoseCmd) Name() string     { return "add-dose" }
func (*addDoseCmd) Synopsis() string { return "record a medication dose" }
func (*addDoseCmd) Usage() string {
	return `slimtrack add-dose -type <Ozempic|Mounjaro> -mg <dose> [-date YYYY-MM-DD] [-notes <text>]
`
}

func (c *addDoseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "type", "", "Medication: Ozempic or Mounjaro.")
	f.Float64Var(&c.mg, "mg", 0, "Dose in milligrams.")
	f.StringVar(&c.date, "date", "", "Date of the dose (defaults to today).")
	f.StringVar(&c.notes, "notes", "", "Free-form notes.")
}

func (c *addDoseCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	med, err := domain.ParseMedication(c.kind)
	if err != nil {
		return c.app.usage("add-dose: -type must be Ozempic or Mounjaro")
	}
	sess, err := c.app.Auth.Authorize(ctx)
	if err != nil {
		return c.app.fail(err)
	}
	d, err := c.app.dayOrToday(c.date)
	if err != nil {
		return c.app.fail(err)
	}
	dose, err := c.app.Doses.RecordDose(ctx, sess, domain.DoseInput{Type: med, DoseMg: c.mg, Date: d, Notes: c.notes})
	if err != nil {
		return c.app.fail(err)
	}
	fmt.Fprintf(c.app.Out, "Recorded %s %g mg on %s (%s).\n", dose.Type, dose.DoseMg, dose.Date, dose.ID)
	return subcommands.ExitSuccess
}

type listDosesCmd struct{ app *App }

func (*listDosesCmd) Name() string             { return "doses" }
func (*listDosesCmd) Synopsis() string         { return "list doses, most recent first" }
func (*listDosesCmd) Usage() string            { return "slimtrack doses\n" }
func (*listDosesCmd) SetFlags(_ *flag.FlagSet) {}

func (c *listDosesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	sess, err := c.app.Auth.Authorize(ctx)
	if err != nil {
		return c.app.fail(err)
	}
	items, err := c.app.Doses.ListForAccount(ctx, sess.AccountID())
	if err != nil {
		return c.app.fail(err)
	}
	if len(items) == 0 {
		fmt.Fprintln(c.app.Out, "No doses yet.")
		return subcommands.ExitSuccess
	}

	tw := c.app.table()
	fmt.Fprintln(tw, "DATE\tTYPE\tMG\tNOTES\tID")
	for _, d := range items {
		fmt.Fprintf(tw, "%s\t%s\t%g\t%s\t%s\n", d.Date, d.Type, d.DoseMg, d.Notes, d.ID)
	}
	_ = tw.Flush()
	return subcommands.ExitSuccess
}

type rmDoseCmd struct{ app *App }

func (*rmDoseCmd) Name() string             { return "rm-dose" }
func (*rmDoseCmd) Synopsis() string         { return "delete a dose" }
func (*rmDoseCmd) Usage() string            { return "slimtrack rm-dose <id>\n" }
func (*rmDoseCmd) SetFlags(_ *flag.FlagSet) {}

func (c *rmDoseCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.app.usage("rm-dose: expected exactly one id")
	}
	sess, err := c.app.Auth.Authorize(ctx)
	if err != nil {
		return c.app.fail(err)
	}
	if err := c.app.Doses.Delete(ctx, sess, f.Arg(0)); err != nil {
		return c.app.fail(err)
	}
	fmt.Fprintln(c.app.Out, "Deleted.")
	return subcommands.ExitSuccess
}

type dashboardCmd struct {
	app  *App
	unit string
}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "show progress towards the target weight" }
func (*dashboardCmd) Usage() string {
	return `slimtrack dashboard [-unit kg|lb]
`
}

func (c *dashboardCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.unit, "unit", "kg", "Display unit: kg or lb.")
}

func (c *dashboardCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	unit, err := domain.ParseUnit(c.unit)
	if err != nil {
		return c.app.usage("dashboard: -unit must be kg or lb")
	}
	sess, err := c.app.Auth.Authorize(ctx)
	if err != nil {
		return c.app.fail(err)
	}
	d, err := c.app.Dashboard.GetDashboard(ctx, sess, unit)
	if err != nil {
		return c.app.fail(err)
	}

	tw := c.app.table()
	fmt.Fprintf(tw, "Initial\t%s\n", formatWeight(d.InitialWeight, unit))
	fmt.Fprintf(tw, "Current\t%s\n", formatWeight(d.LatestWeight, unit))
	fmt.Fprintf(tw, "Target\t%s\n", formatWeight(d.TargetWeight, unit))
	fmt.Fprintf(tw, "Lost\t%s\n", formatWeight(d.TotalLoss, unit))
	fmt.Fprintf(tw, "Progress\t%.0f%%\n", d.ProgressPercent)
	if d.LastDose != nil {
		fmt.Fprintf(tw, "Last dose\t%s %g mg on %s\n", d.LastDose.Type, d.LastDose.DoseMg, d.LastDose.Date)
	}
	_ = tw.Flush()

	if !d.ChartReady {
		fmt.Fprintln(c.app.Out, "Record at least two weigh-ins to see your trend.")
		return subcommands.ExitSuccess
	}
	fmt.Fprintln(c.app.Out)
	for _, p := range d.Series {
		fmt.Fprintf(c.app.Out, "%s  %s\n", p.Label, formatWeight(p.Weight, unit))
	}
	return subcommands.ExitSuccess
}
