package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var CheckCmd = &cobra.Command{
	Use:          "check scenario.yaml",
	Short:        "Replay a scenario and fail if a step does not produce the expected facts",
	RunE:         runCheck,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

func runCheck(cmd *cobra.Command, args []string) error {
	s, err := loadScenario(args[0])
	if err != nil {
		return err
	}
	report, err := s.Run()
	if err != nil {
		return err
	}
	failed := 0
	for i, step := range report.Steps {
		if step.OK() {
			continue
		}
		failed++
		for _, f := range step.Missing {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "step %d: missing %s\n", i, f)
		}
		for _, f := range step.Unexpected {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "step %d: unexpected %s\n", i, f)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d steps did not produce the expected facts", failed, len(report.Steps))
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d steps ok\n", len(report.Steps))
	return err
}
