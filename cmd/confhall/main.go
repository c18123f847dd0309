// Command confhall is a local harness for the conference session service.
// It seeds an in-memory storage engine from a JSON fixture and runs
// queries and mutations against the session core.
//
// Logging:
//   - Base logger is created here with output format and level
//   - Logger is passed to all components via dependency injection
//   - No global slog configuration (no slog.SetDefault)
package main

import (
	"fmt"
	"log/slog"
	"os"

	"confhall/cmd/confhall/cli"
)

var version = "dev"

func main() {
	level := slog.LevelWarn
	if os.Getenv("CONFHALL_DEBUG") != "" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	root := cli.New(logger, version)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
