// Command relkit automates releases and multi-arch image builds.
package main

import (
	"os"

	"github.com/relkit/relkit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
