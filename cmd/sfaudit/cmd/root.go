package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/sfaudit/internal/config"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile            string
	logLevel           string
	logFormat          string
	targetOrg          string
	workers            int
	callTimeoutSeconds int
)

// outputWriter is used for printing output, can be overridden in tests
var outputWriter io.Writer = os.Stdout

// setOutputWriter sets the output writer (used for testing)
func setOutputWriter(w io.Writer) {
	outputWriter = w
}

// resetOutputWriter resets output to stdout (used for testing)
func resetOutputWriter() {
	outputWriter = os.Stdout
}

var rootCmd = &cobra.Command{
	Use:   "sfaudit",
	Short: "Salesforce Custom Metadata Field Audit",
	Long: `A CLI tool for auditing custom metadata type fields in a Salesforce org,
flagging fields whose declared size exceeds a safe threshold and measuring
how much of that size the stored values actually use.

Features:
  - Discovers custom metadata types through the Salesforce CLI
  - Flags oversized fields per configurable type limits
  - Measures longest and shortest stored values per field
  - Reports as CSV, text table, or plain lines`,
	Version: Version,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag. No shorthand: -c belongs to the audit CSV flag.
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "sfaudit.yaml",
		"Path to configuration file")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Salesforce overrides
	rootCmd.PersistentFlags().StringVar(&targetOrg, "target-org", "",
		"Override target org alias or username (empty uses the CLI default org)")

	// Audit overrides
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0,
		"Override number of concurrent CLI calls")
	rootCmd.PersistentFlags().IntVar(&callTimeoutSeconds, "call-timeout", 0,
		"Override per-call timeout in seconds")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// CLIOverrides contains flag values that override config file settings
type CLIOverrides struct {
	LogLevel           string
	LogFormat          string
	TargetOrg          string
	Workers            int
	CallTimeoutSeconds int
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() CLIOverrides {
	return CLIOverrides{
		LogLevel:           logLevel,
		LogFormat:          logFormat,
		TargetOrg:          targetOrg,
		Workers:            workers,
		CallTimeoutSeconds: callTimeoutSeconds,
	}
}

// loadConfig loads the configuration for a command run. The well-known
// default path may be absent, but a path given explicitly must exist.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configFile := GetConfigFile()

	var cfg *config.Config
	var err error
	if flag := cmd.Flag("config"); flag != nil && flag.Changed {
		cfg, err = config.Load(configFile)
	} else {
		cfg, err = config.LoadOrDefault(configFile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat,
		overrides.TargetOrg, overrides.Workers, overrides.CallTimeoutSeconds)

	return cfg, nil
}
