package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/binview/binview/internal/harness"
)

// ValidateReport is the JSON payload of a validate command.
type ValidateReport struct {
	Path  string `json:"path"`
	Name  string `json:"name,omitempty"`
	Steps int    `json:"steps,omitempty"`
	Valid bool   `json:"valid"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <scenario.yaml>",
		Short: "Validate a scenario without running it",
		Long: `Check a scenario file against the CUE schema and the loader's
semantic rules without executing any step.

Exit codes:
  0 - Scenario is valid
  2 - Scenario is missing or invalid

Examples:
  binview validate scenarios/zoom-roundtrip.yaml
  binview validate scenarios/zoom-roundtrip.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateScenarioFile(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func validateScenarioFile(opts *RootOptions, path string, cmd *cobra.Command) error {
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
		formatter.Error(ErrCodeInvalid, err.Error(), ValidateReport{Path: path, Valid: false})
		return WrapExitError(ExitCommandError, "invalid scenario", err)
	}

	report := ValidateReport{
		Path:  path,
		Name:  scenario.Name,
		Steps: len(scenario.Steps),
		Valid: true,
	}
	if opts.Format == "json" {
		return formatter.Success(report)
	}
	fmt.Fprintf(formatter.Writer, "✓ %s is valid (%d steps)\n", scenario.Name, report.Steps)
	return nil
}
