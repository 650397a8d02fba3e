package main

import (
	"os"

	"github.com/UjjawalGusain/Retail-Sales-Management-System/internal/cli"
	"github.com/UjjawalGusain/Retail-Sales-Management-System/internal/logging"
)

func main() {
	if err := cli.Execute(); err != nil {
		logging.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
