package commands

import (
	"errors"
	"fmt"

	"github.com/pgddui/pgddui/internal/catalog"
	"github.com/pgddui/pgddui/internal/cli/output"
	"github.com/pgddui/pgddui/internal/extension"
	"github.com/spf13/cobra"
)

// Doctor check statuses, as understood by output.Renderer.StatusLine.
const (
	statusPass = "success"
	statusWarn = "warning"
	statusFail = "error"
	statusSkip = "skipped"
)

// DoctorReport is the JSON output of the doctor command.
type DoctorReport struct {
	Checks  []DoctorCheck `json:"checks"`
	Healthy bool          `json:"healthy"`
}

// DoctorCheck is the outcome of one check.
type DoctorCheck struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (d *DoctorReport) add(name, status, detail string) {
	d.Checks = append(d.Checks, DoctorCheck{Name: name, Status: status, Detail: detail})
}

// failures counts failed checks.
func (d *DoctorReport) failures() int {
	n := 0
	for _, c := range d.Checks {
		if c.Status == statusFail {
			n++
		}
	}
	return n
}

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration, connectivity and the PgDD extension",
		Long: `Diagnose why the data dictionary cannot be shown.

Checks, in order:
- Configuration is complete and valid
- The target database accepts connections
- The PgDD extension is installed and recent enough
- The catalog functions in catalog_schema answer
- A session secret is configured for the viewer

Exits non-zero when any check fails.`,
		Args: cobra.NoArgs,
		Annotations: map[string]string{
			AnnotationLenientConfig: "true",
		},
		RunE: runDoctor,
	}
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	cmdCtx := NewCommandContextWithoutDB(cmd)
	report := diagnose(cmd, cmdCtx)

	r := cmdCtx.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		if err := r.JSON(report); err != nil {
			return err
		}
	} else {
		r.Header(1, "pgddui doctor")
		for _, c := range report.Checks {
			r.StatusLine(c.Name, c.Status, c.Detail)
		}
		r.Println()
		if report.Healthy {
			r.Success("Everything looks good")
		}
	}

	if n := report.failures(); n > 0 {
		return fmt.Errorf("doctor found %d failing check(s)", n)
	}
	return nil
}

func diagnose(cmd *cobra.Command, cmdCtx *CommandContext) *DoctorReport {
	ctx := cmd.Context()
	cfg := cmdCtx.Cfg
	report := &DoctorReport{}

	if cfg.ConfigFile != "" {
		report.add("Config file", statusPass, cfg.ConfigFile)
	} else {
		report.add("Config file", statusWarn, "none found, using defaults and environment")
	}

	if err := cfg.Validate(); err != nil {
		report.add("Configuration", statusFail, err.Error())
		skipRemaining(report, "invalid configuration")
		addSecretCheck(report, cmdCtx)
		return finish(report)
	}
	report.add("Configuration", statusPass, describeTarget(cfg.Target))

	q, cleanup, err := connectTarget(ctx, cfg.Target, cmdCtx.Logger)
	defer cleanup()
	if err != nil {
		report.add("Connection", statusFail, err.Error())
		skipRemaining(report, "no connection")
		addSecretCheck(report, cmdCtx)
		return finish(report)
	}
	report.add("Connection", statusPass, "")

	gate := extension.NewGate(q, cfg.CheckVersion, cmdCtx.Logger)
	installed, err := gate.Check(ctx)
	var outdated *extension.OutdatedError
	switch {
	case err == nil && !cfg.CheckVersion:
		report.add("PgDD extension", statusWarn, fmt.Sprintf("version check disabled, assuming %s", installed))
	case err == nil:
		report.add("PgDD extension", statusPass, fmt.Sprintf("%s (minimum %s)", installed, gate.MinSupportedVersion()))
	case errors.As(err, &outdated):
		report.add("PgDD extension", statusFail, outdated.Error())
	default:
		report.add("PgDD extension", statusFail, err.Error())
	}

	reader := catalog.NewReader(q, cfg.CatalogSchema, cmdCtx.Logger)
	if schemas, err := reader.Schemas(ctx, false); err != nil {
		report.add("Catalog functions", statusFail, err.Error())
	} else {
		report.add("Catalog functions", statusPass, fmt.Sprintf("%d user schemas in %s", len(schemas), cfg.CatalogSchema))
	}

	addSecretCheck(report, cmdCtx)
	return finish(report)
}

func skipRemaining(report *DoctorReport, reason string) {
	for _, name := range []string{"Connection", "PgDD extension", "Catalog functions"} {
		if !report.has(name) {
			report.add(name, statusSkip, reason)
		}
	}
}

func (d *DoctorReport) has(name string) bool {
	for _, c := range d.Checks {
		if c.Name == name {
			return true
		}
	}
	return false
}

func addSecretCheck(report *DoctorReport, cmdCtx *CommandContext) {
	if _, configured := cmdCtx.Cfg.SessionSecret(); configured {
		report.add("Session secret", statusPass, "")
		return
	}
	report.add("Session secret", statusWarn, "using the public default; set ui.session_secret")
}

func finish(report *DoctorReport) *DoctorReport {
	report.Healthy = report.failures() == 0
	return report
}
