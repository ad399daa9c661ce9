package main

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "cassowary-demo",
		Short: "Load a Cassowary layout file and solve it",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var level slog.Level
			if err := level.UnmarshalText([]byte(logLevel)); err != nil {
				return err
			}
			slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
				Level:      level,
				TimeFormat: "15:04:05",
			})))
			return nil
		},
	}

	levels := pflag.NewFlagSet("cassowary-demo", pflag.ContinueOnError)
	levels.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, or error")
	root.PersistentFlags().AddFlagSet(levels)

	root.AddCommand(newSolveCmd())
	root.AddCommand(newSuggestCmd())
	return root
}
