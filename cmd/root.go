package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/shivakharbanda/cm-front/internal/api"
	"github.com/shivakharbanda/cm-front/internal/config"
	"github.com/shivakharbanda/cm-front/internal/logger"
	"github.com/shivakharbanda/cm-front/internal/session"
	"github.com/shivakharbanda/cm-front/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig string
	flagAPIURL string
)

var rootCmd = &cobra.Command{
	Use:   "cm",
	Short: "Terminal client for the InstaAuto comment-to-DM and link-in-bio platform",
	Long: `cm manages your link-in-bio page, Instagram automations and analytics
from the terminal. Running it without a subcommand opens the interactive
dashboard.`,
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "API base URL (overrides config)")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cm %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

// newClient wires config, session store and logger into an API client. Every
// subcommand goes through here so overrides behave the same everywhere.
func newClient() (*api.Client, *config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, zerolog.Nop(), fmt.Errorf("loading config: %w", err)
	}

	baseURL := cfg.BaseURL()
	if flagAPIURL != "" {
		baseURL = flagAPIURL
	}

	log := logger.New(config.LogPath())
	sess := session.Open(config.SessionPath())
	return api.New(baseURL, sess, log), cfg, log, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	client, cfg, log, err := newClient()
	if err != nil {
		return err
	}
	return tui.Run(cfg, client, log)
}
