package main

import (
	"os"

	"github.com/devflow-tools/wtm/cmd"
	"github.com/devflow-tools/wtm/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
