// Package main provides the alfa command-line tool.
package main

import (
	"os"

	"github.com/lathaniel/alfa/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
