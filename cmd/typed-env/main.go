// Package main provides the CLI entrypoint for typed-env.
//
// typed-env binds KEY=VALUE input against a YAML schema:
//   - bind prints the typed record
//   - check reports every malformed line, bad value and unknown key
//   - describe lists the schema's fields
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"typed-env/cmd/typed-env/commands"
)

// Version information (set via ldflags during build)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func main() {
	settings, err := commands.LoadSettings()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	setupLogging(settings.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := commands.Execute(ctx, settings, Version, Commit, BuildDate); err != nil {
		if !errors.Is(err, commands.ErrCheckFailed) {
			log.Error().Err(err).Msg("Command execution failed")
		}

		cancel()
		os.Exit(1)
	}
}

// setupLogging configures zerolog for human-readable output on stderr.
func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(lvl)
}
