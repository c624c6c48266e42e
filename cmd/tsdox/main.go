// Package main provides the tsdox command.
package main

import (
	"os"

	"github.com/gork-labs/tsdox/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
