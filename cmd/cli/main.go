// Package main is the entry point for the service-estimator CLI.
package main

import (
	"os"

	"service-estimator/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
