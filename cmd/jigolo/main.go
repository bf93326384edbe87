package main

import (
	"errors"
	"fmt"
	"os"
)

var (
	version = "dev"
)

// Entry point for the application
func main() {
	if err := NewRootCmd().Execute(); err != nil {
		if !errors.Is(err, ErrAllPathsFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
