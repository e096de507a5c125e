package main

import (
	"github.com/urfave/cli/v3"
)

// getCommands lists the server lifecycle commands first, then the one-shot content lookups.
func getCommands(version string) []*cli.Command {
	return append(getSystemCommands(version), getContentCommands()...)
}
