package main

import (
	"errors"
	"log/slog"
	"os"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	level := new(slog.LevelVar)
	level.Set(slog.LevelWarn)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := newRootCmd(logger, level).Execute(); err != nil {
		// A failed outcome has already been printed to the user.
		if !errors.Is(err, errOutcomeFailed) {
			logger.Error("deskhand failed", "error", err)
		}
		os.Exit(1)
	}
}
