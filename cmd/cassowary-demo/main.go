// Command cassowary-demo is a small CLI driver over the solver and
// layoutspec packages: it loads a YAML layout file, solves it, and either
// reports the resulting variable values or applies a batch of edit
// suggestions and reports before/after values.
package main

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

func main() {
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: "15:04:05",
	})))

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
