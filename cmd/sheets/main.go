package main

import (
	"os"

	"github.com/dmelim/local-character-sheets/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
