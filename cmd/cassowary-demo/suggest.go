package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gridwright/cassowary/solver"
)

func newSuggestCmd() *cobra.Command {
	var sets []string

	cmd := &cobra.Command{
		Use:   "suggest <layout.yaml>",
		Short: "Solve a layout file, apply --set edits, and print before/after values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sys, err := solveFile(args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "before:")
			printValues(cmd, sys)

			vars, values, err := parseSets(sys.Variables, sets)
			if err != nil {
				return err
			}

			if err := sys.Solver.SuggestBatch(vars, values); err != nil {
				slog.Error("suggestion rejected", "error", err)
				return err
			}

			slog.Info("suggestions applied", "count", len(vars))
			fmt.Fprintln(cmd.OutOrStdout(), "after:")
			printValues(cmd, sys)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "variable=value edit to suggest, may be repeated")
	return cmd
}

func parseSets(known map[string]solver.Symbol, sets []string) ([]solver.Symbol, []float64, error) {
	vars := make([]solver.Symbol, 0, len(sets))
	values := make([]float64, 0, len(sets))

	for _, set := range sets {
		name, raw, ok := strings.Cut(set, "=")
		if !ok {
			return nil, nil, fmt.Errorf("cassowary-demo: malformed --set %q, expected name=value", set)
		}

		sym, ok := known[name]
		if !ok {
			return nil, nil, fmt.Errorf("cassowary-demo: --set references unknown variable %q", name)
		}

		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("cassowary-demo: --set %q: %w", set, err)
		}

		vars = append(vars, sym)
		values = append(values, value)
	}

	return vars, values, nil
}
