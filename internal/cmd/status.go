package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bloodworks-io/phlox-cli/internal/config"
	"github.com/bloodworks-io/phlox-cli/internal/health"
)

var statusCategory string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the server connection and local configuration",
	Long: `Run diagnostic checks against the Phlox server and the local setup.

Checks are grouped into categories:
  backend    - server reachability, version, onboarding state
  config     - local config file, recordings directory, capture tool
  endpoints  - configured language model and transcription endpoints

Use --category to run only a specific group.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		checker := health.NewChecker(newClient(), config.Get())

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		var report *health.Report
		if statusCategory != "" {
			report = checker.RunCategory(ctx, statusCategory)
		} else {
			report = checker.RunAll(ctx)
		}

		fmt.Println(health.FormatReport(report))
		return nil
	},
}

func init() {
	statusCmd.Flags().StringVar(&statusCategory, "category", "", "run checks in a category: backend, config, or endpoints")
	rootCmd.AddCommand(statusCmd)
}
