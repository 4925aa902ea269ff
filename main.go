//go:build !(js || wasm)

package main

import (
	"os"

	"github.com/cottand/flowfacts/cmd"
	"github.com/spf13/cobra"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "flowfacts [subcommand]",
	Short:        "flowfacts\n replay and inspect what a flow-sensitive narrowing analysis knows",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(cmd.RenderCmd)
	rootCmd.AddCommand(cmd.CheckCmd)
	rootCmd.AddCommand(cmd.InvertCmd)
}
