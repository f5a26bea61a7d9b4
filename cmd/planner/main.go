package main

import (
	"os"

	"alcyxob/plan-builder/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
