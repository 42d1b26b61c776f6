// Command planner is the course-scheduler CLI: it loads a catalog, group
// registry, params file, and per-student input, emits the MILP, hands it
// to an external solver, and prints the resulting schedule.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("planner failed")
		os.Exit(1)
	}
}

func configureLogging(jsonLogs bool, verbose bool) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if jsonLogs {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
}
