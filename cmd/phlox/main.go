package main

import (
	"os"

	"github.com/bloodworks-io/phlox-cli/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
