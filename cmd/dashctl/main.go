// Package main provides dashctl, a command line front end to the dashboard's
// parameter and series tooling.
package main

import (
	"os"

	"dashboard-go/internal/logging"

	"github.com/rs/zerolog"
)

func main() {
	logger := logging.New(zerolog.InfoLevel, true)
	if err := newRootCmd(os.Stdout, os.Stdin).Execute(); err != nil {
		logger.Error().Err(err).Msg("dashctl failed")
		os.Exit(1)
	}
}
