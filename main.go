package main

import (
	"os"

	"github.com/sogladev/wow-realm-switch-utility/cmd"
	"github.com/sogladev/wow-realm-switch-utility/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
