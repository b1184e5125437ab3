package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bloodworks-io/phlox-cli/internal/config"
	"github.com/bloodworks-io/phlox-cli/internal/tui/styles"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the local CLI configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the local configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()

		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}

		fmt.Println(styles.Label.Render("FILE") + "  " + styles.Value.Render(config.Path()))
		fmt.Println()
		fmt.Println(string(data))

		if issues := config.Validate(cfg); len(issues) > 0 {
			fmt.Println()
			for _, issue := range issues {
				fmt.Println(styles.Red("!") + " " + issue.Error())
			}
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set one local configuration value and write the config file.

Keys:
  serverUrl              Phlox server base URL
  requestTimeoutSeconds  per-request timeout
  chatEnabled            include quick chat in setup (true/false)
  recordingsDir          directory for encounter recordings
  captureCommand         audio capture binary override
  autoSendRecordings     auto-send new recordings (true/false)`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		key, value := args[0], args[1]

		switch key {
		case "serverUrl":
			cfg.ServerURL = strings.TrimRight(value, "/")
		case "requestTimeoutSeconds":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("requestTimeoutSeconds must be a number: %q", value)
			}
			cfg.RequestTimeoutSeconds = n
		case "chatEnabled":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("chatEnabled must be true or false: %q", value)
			}
			cfg.ChatEnabled = b
		case "recordingsDir":
			cfg.RecordingsDir = value
		case "captureCommand":
			cfg.CaptureCommand = value
		case "autoSendRecordings":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("autoSendRecordings must be true or false: %q", value)
			}
			cfg.AutoSendRecordings = b
		default:
			return fmt.Errorf("unknown config key %q (see 'phlox config set --help')", key)
		}

		if issues := config.Validate(cfg); len(issues) > 0 {
			return fmt.Errorf("invalid value: %s", issues[0].Error())
		}

		if err := config.Save(cfg); err != nil {
			return err
		}
		fmt.Println(styles.Green("Saved.") + " " + styles.Dim(key+" = "+value))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
