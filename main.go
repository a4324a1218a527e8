package main

import (
	"fmt"
	"os"

	"github.com/homeport/responder/cli"
	"github.com/homeport/responder/internal/config"
	"github.com/homeport/responder/internal/logging"
	"golang.org/x/exp/slog"
)

func main() {
	settings, err := config.ReadLogging()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := logging.New(settings, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	cli.Execute()
}
