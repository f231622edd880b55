// Package main provides the twcfg CLI for validating, normalizing and
// watching Tailwind-style configuration declarations.
package main

import (
	"errors"
	"fmt"
	"os"
)

// errReported signals that the failure was already printed by the reporter.
var errReported = errors.New("declaration rejected")

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
