package main

import (
	"os"

	"github.com/idilsaglam/ticketboard/internal/cli"
)

func main() {
	// Hand the args to the CLI runner; it owns flags, subcommands and
	// error reporting.
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}
