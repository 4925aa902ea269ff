package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cottand/flowfacts/internal/log"
	"github.com/cottand/flowfacts/scenario"
	"github.com/spf13/cobra"
)

var RenderCmd = &cobra.Command{
	Use:          "render scenario.yaml",
	Short:        "Replay a scenario and print every implication and approved fact",
	RunE:         runRender,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var (
	format   string
	logLevel int
)

func init() {
	RenderCmd.Flags().StringVarP(&format, "format", "f", string(scenario.FormatText), "output format, text or yaml")
	for _, c := range []*cobra.Command{RenderCmd, CheckCmd, InvertCmd} {
		c.Flags().IntVarP(&logLevel, "log-level", "l", int(slog.LevelWarn), "log level")
	}
}

var logger = log.DefaultLogger.With("section", "cmd")

func loadScenario(target string) (*scenario.Scenario, error) {
	log.SetLevel(slog.Level(logLevel))

	path, err := filepath.Abs(target)
	if err != nil {
		return nil, fmt.Errorf("could not get absolute path of target: %w", err)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open scenario: %w", err)
	}
	defer f.Close()

	logger.Debug("loading scenario", "path", path)
	return scenario.Load(f)
}

func runRender(cmd *cobra.Command, args []string) error {
	s, err := loadScenario(args[0])
	if err != nil {
		return err
	}
	report, err := s.Run()
	if err != nil {
		return err
	}
	out, err := report.Render(scenario.Format(format))
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}
