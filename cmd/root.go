package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/logsum-cli/internal/config"
	"github.com/KaramelBytes/logsum-cli/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	cfgFile      string
	debug        bool
	flagLogLevel string

	// Loaded configuration
	cfg *cfgpkg.Global

	// Logger for diagnostics; never nil after loadConfig.
	log = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "logsum",
	Short: "logsum: logsum accessibility from a fitted mode-choice model",
	Long: `logsum evaluates mode-choice utilities for every person-alternative record,
reduces each person to a logsum accessibility and summarizes it by a grouping attribute.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Config and logger are reloaded before every command run
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.logsum/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug|info|warn|error (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands that need config report it themselves
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		cfg = nil
	} else {
		cfg = c
	}

	level := flagLogLevel
	if level == "" && cfg != nil {
		level = cfg.LogLevel
	}
	lg, err := logging.New(level, debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: %v\n", err)
		lg, _ = logging.New("info", debug)
	}
	if lg != nil {
		log = lg
	}
}

func requireConfig() (*cfgpkg.Global, error) {
	if cfg == nil {
		return nil, fmt.Errorf("no configuration loaded; fix or remove the config file")
	}
	return cfg, nil
}
