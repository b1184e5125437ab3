package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bloodworks-io/phlox-cli/internal/config"
	"github.com/bloodworks-io/phlox-cli/internal/tui/styles"
	"github.com/bloodworks-io/phlox-cli/internal/tui/views"
)

var setupNoChat bool

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Run the interactive onboarding wizard",
	Long: `Walk through first-time setup: your name and specialty, the language
model and transcription endpoints, and default templates. Everything is
saved to the Phlox server; the wizard can be re-run at any time to change
these settings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		client := newClient()

		chatEnabled := cfg.ChatEnabled && !setupNoChat
		finished, err := views.RunOnboarding(client, cfg.ServerURL, chatEnabled)
		if err != nil {
			return err
		}
		if !finished {
			fmt.Println(styles.Amber("Setup cancelled.") + " " + styles.Dim("Run 'phlox setup' again any time."))
			return nil
		}

		// Persist the local config file so later commands (and the health
		// check) find it even when setup never touched a local setting.
		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("writing local config: %w", err)
		}

		fmt.Println(styles.Green("Setup complete."))
		if !config.EmbeddedRuntime() {
			// The desktop shell takes over from here; only standalone
			// terminals get the next-step hint.
			fmt.Println(styles.Dim("Run 'phlox status' to verify your configuration."))
		}
		return nil
	},
}

func init() {
	setupCmd.Flags().BoolVar(&setupNoChat, "no-chat", false, "skip the quick chat step")
	rootCmd.AddCommand(setupCmd)
}
