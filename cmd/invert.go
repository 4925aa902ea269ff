package cmd

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/cottand/flowfacts/dfa"
	"github.com/cottand/flowfacts/internal/log"
	"github.com/cottand/flowfacts/notation"
	"github.com/cottand/flowfacts/scenario"
	"github.com/spf13/cobra"
)

var InvertCmd = &cobra.Command{
	Use:   "invert 'x != Null' | 'x == True -> x: {T}'",
	Short: "Print the condition fact for the other branch of a test",
	Long: "Print the condition fact for the other branch of a test.\n" +
		"When given an implication, its condition is inverted and its effect kept.",
	RunE:         runInvert,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

// freeResolver makes up a variable for every name it is asked about.
// Names like $3 are synthetic variables, every other name is a real one.
type freeResolver struct {
	names map[string]dfa.Variable
}

func (r *freeResolver) Variable(name string) (dfa.Variable, bool) {
	if v, ok := r.names[name]; ok {
		return v, true
	}
	// kept clear of the IDs of synthetic variables
	id := dfa.VariableID(1<<31) + dfa.VariableID(len(r.names))
	var v dfa.Variable = dfa.NewRealVariable(id, name, nil)
	if n, err := strconv.ParseUint(strings.TrimPrefix(name, "$"), 10, 32); err == nil && strings.HasPrefix(name, "$") {
		v = dfa.NewSyntheticVariable(dfa.VariableID(n))
	}
	r.names[name] = v
	return v, true
}

func (r *freeResolver) Type(name string) (dfa.Type, bool) {
	return scenario.NominalType{Name: name}, true
}

func runInvert(cmd *cobra.Command, args []string) error {
	log.SetLevel(slog.Level(logLevel))
	resolver := &freeResolver{names: map[string]dfa.Variable{}}

	var inverted fmt.Stringer
	if strings.Contains(args[0], "->") {
		implication, err := notation.ParseImplication(args[0], resolver)
		if err != nil {
			return err
		}
		inverted = implication.InvertCondition()
	} else {
		cond, err := notation.ParseCondition(args[0], resolver)
		if err != nil {
			return err
		}
		inverted = cond.Invert()
	}
	logger.Debug("inverted", "input", args[0], "output", inverted)
	_, err := fmt.Fprintln(cmd.OutOrStdout(), inverted)
	return err
}
