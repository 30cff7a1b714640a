package main

import (
	"fmt"
	"os"

	"github.com/sunny-nanade/xr-education-cross-disciplinary-teams/internal/cmd"
	"github.com/sunny-nanade/xr-education-cross-disciplinary-teams/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "assign-teams: %v\n", err)
		os.Exit(errors.ExitCode(err))
	}
}
