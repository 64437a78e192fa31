package main

import (
	"os"

	"github.com/Dan9191/fintrack/cmd/fintrackctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
