package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/binview/binview/internal/harness"
)

// RunReport is the JSON payload of a run command.
type RunReport struct {
	Name       string               `json:"name"`
	Pass       bool                 `json:"pass"`
	Trace      []harness.TraceEvent `json:"trace"`
	Errors     []string             `json:"errors,omitempty"`
	Hits       int                  `json:"hits"`
	HomeHits   int                  `json:"home_hits"`
	Recomputes int                  `json:"recomputes"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Run a resampling scenario",
		Long: `Execute a scenario against the caching view policy and print the
trace of compute and reuse decisions.

Exit codes:
  0 - Scenario passed
  1 - Step expects or assertions failed
  2 - Command error (missing file, invalid scenario)

Examples:
  binview run scenarios/zoom-roundtrip.yaml
  binview run scenarios/zoom-roundtrip.yaml --format json
  binview run scenarios/zoom-roundtrip.yaml -v`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runScenario(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		formatter.Error(ErrCodeNotFound, fmt.Sprintf("scenario file not found: %s", path), nil)
		return NewExitError(ExitCommandError, fmt.Sprintf("scenario file not found: %s", path))
	}

	scenario, err := harness.LoadScenario(path)
	if err != nil {
		formatter.Error(ErrCodeInvalid, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid scenario", err)
	}
	formatter.VerboseLog("loaded scenario %q (%d steps)", scenario.Name, len(scenario.Steps))

	result, err := harness.Run(scenario)
	if err != nil {
		formatter.Error(ErrCodeRunFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "scenario execution failed", err)
	}

	report := RunReport{
		Name:       scenario.Name,
		Pass:       result.Pass,
		Trace:      result.Trace,
		Errors:     result.Errors,
		Hits:       result.Stats.Hits,
		HomeHits:   result.Stats.HomeHits,
		Recomputes: result.Stats.Recomputes,
	}

	if opts.Format == "json" {
		if err := outputRunJSON(formatter, report); err != nil {
			return err
		}
	} else {
		outputRunText(formatter, report)
	}

	if !result.Pass {
		return NewExitError(ExitFailure, fmt.Sprintf("scenario %q failed", scenario.Name))
	}
	return nil
}

func outputRunJSON(formatter *OutputFormatter, report RunReport) error {
	if report.Pass {
		return formatter.Success(report)
	}
	return formatter.Error(ErrCodeExpectFailed,
		fmt.Sprintf("scenario %q failed", report.Name), report)
}

func outputRunText(formatter *OutputFormatter, report RunReport) {
	w := formatter.Writer
	fmt.Fprintf(w, "Scenario: %s\n", report.Name)
	for _, ev := range report.Trace {
		switch ev.Type {
		case "reset":
			fmt.Fprintf(w, "  [%d] reset\n", ev.Seq)
		case "view":
			fmt.Fprintf(w, "  [%d] view %-8s dims=%v shape=%v", ev.Seq, ev.Outcome, ev.Dims, ev.Shape)
			if ev.Total != nil {
				fmt.Fprintf(w, " total=%g %s", *ev.Total, ev.Unit)
			}
			fmt.Fprintln(w)
		}
	}
	fmt.Fprintf(w, "Cache: %d hits, %d home hits, %d recomputes\n",
		report.Hits, report.HomeHits, report.Recomputes)

	if report.Pass {
		fmt.Fprintln(w, "✓ passed")
		return
	}
	fmt.Fprintln(w, "✗ failed")
	for _, e := range report.Errors {
		fmt.Fprintf(w, "  %s\n", e)
	}
}
