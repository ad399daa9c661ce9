package main

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/spf13/cobra"

	"github.com/gridwright/cassowary/layoutspec"
)

func newSolveCmd() *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "solve <layout.yaml>",
		Short: "Load a layout file, solve it, and print variable values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sys, err := solveFile(args[0])
			if err != nil {
				return err
			}

			printValues(cmd, sys)

			if dump {
				if err := sys.Solver.DumpRows(cmd.OutOrStdout()); err != nil {
					return fmt.Errorf("dump rows: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "also print the solved tableau's basic rows")
	return cmd
}

func solveFile(path string) (*layoutspec.System, error) {
	doc, err := layoutspec.LoadFile(path)
	if err != nil {
		return nil, err
	}

	sys, err := layoutspec.Build(doc)
	if err != nil {
		slog.Error("layout rejected", "path", path, "error", err)
		return nil, err
	}

	slog.Info("layout solved", "path", path, "variables", len(sys.Variables), "constraints", len(sys.Constraints))
	return sys, nil
}

func printValues(cmd *cobra.Command, sys *layoutspec.System) {
	names := make([]string, 0, len(sys.Variables))
	for name := range sys.Variables {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %g\n", name, sys.Solver.Value(sys.Variables[name]))
	}
}
