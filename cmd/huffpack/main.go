package main

import (
	"os"

	"github.com/harshithgowdakt/huffpack/internal/command"

	"github.com/nuclio/errors"
)

func main() {
	if err := command.NewRootCommandeer().Execute(); err != nil {
		errors.PrintErrorStack(os.Stderr, err, 5)
		os.Exit(1)
	}
}
