package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bloodworks-io/phlox-cli/internal/api"
	"github.com/bloodworks-io/phlox-cli/internal/config"
)

var (
	cfgFile   string
	serverURL string
	verbose   bool
	noColor   bool
)

var rootCmd = &cobra.Command{
	Use:   "phlox",
	Short: "Terminal companion for the Phlox clinical scribe",
	Long: `Phlox CLI — record encounters, dictate notes, and manage your
Phlox server from the terminal.

All clinical data stays on your own server; this tool only talks to
the Phlox instance configured in ~/.config/phlox/config.json.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Phlox CLI v" + Version)
		fmt.Println("Run 'phlox --help' for available commands")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.config/phlox/config.json)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Phlox server URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable color output")
}

func initConfig() {
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
	if noColor {
		os.Setenv("NO_COLOR", "1")
	}

	path := cfgFile
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Error("loading config", "path", path, "err", err)
		os.Exit(1)
	}

	// Viper layers environment overrides (PHLOX_SERVERURL etc.) on top of
	// the file values.
	viper.SetConfigFile(path)
	viper.SetConfigType("json")
	viper.SetEnvPrefix("phlox")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()

	if v := viper.GetString("serverUrl"); v != "" {
		cfg.ServerURL = v
	}
	if v := viper.GetInt("requestTimeoutSeconds"); v > 0 {
		cfg.RequestTimeoutSeconds = v
	}

	// The flag wins over both file and environment.
	if serverURL != "" {
		cfg.ServerURL = serverURL
	}
}

// newClient builds an API client from the loaded config. Commands that
// upload audio pass a longer timeout; everything else uses the configured
// request timeout.
func newClient(opts ...api.Option) *api.Client {
	cfg := config.Get()
	base := []api.Option{
		api.WithTimeout(time.Duration(cfg.RequestTimeoutSeconds) * time.Second),
	}
	return api.New(cfg.ServerURL, append(base, opts...)...)
}
