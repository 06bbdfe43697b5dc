package main

import (
	"os"

	"github.com/Avinash-006/UniChat/internal/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
