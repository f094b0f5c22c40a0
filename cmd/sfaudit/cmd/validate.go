package cmd

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/sfaudit/internal/logger"
	"github.com/dbsmedya/sfaudit/internal/salesforce"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and probe the Salesforce CLI",
	Long: `Validate checks the configuration file and probes the Salesforce CLI
binary to ensure an audit can run.

Checks performed:
  - Configuration syntax and value ranges
  - Limit policy entries (attribute and threshold)
  - Salesforce CLI reachability (version probe)

Example:
  sfaudit validate --config sfaudit.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile := GetConfigFile()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	fmt.Fprintf(outputWriter, "\n=== Configuration Validation ===\n")
	fmt.Fprintf(outputWriter, "Config file: %s\n\n", configFile)

	hasErrors := false

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(outputWriter, color.Red.Sprintf("❌ Configuration invalid: %v", err))
		hasErrors = true
	} else {
		fmt.Fprintln(outputWriter, color.Green.Sprint("✅ Configuration valid"))
	}

	fmt.Fprintf(outputWriter, "\n--- Limit Policy ---\n")
	limitTypes := cfg.LimitTypes()
	sort.Strings(limitTypes)
	for _, fieldType := range limitTypes {
		limit, _ := cfg.LimitFor(fieldType)
		fmt.Fprintf(outputWriter, "%s: flag when %s > %d\n",
			fieldType, limit.Attribute, limit.Threshold)
	}

	fmt.Fprintf(outputWriter, "\n--- Salesforce CLI ---\n")
	client, err := salesforce.NewClient(&cfg.Salesforce)
	if err != nil {
		fmt.Fprintln(outputWriter, color.Red.Sprintf("❌ %v", err))
		hasErrors = true
	} else {
		ctx, cancel := context.WithTimeout(context.Background(),
			time.Duration(cfg.Audit.CallTimeoutSeconds)*time.Second)
		defer cancel()

		version, err := client.Version(ctx)
		if err != nil {
			fmt.Fprintln(outputWriter, color.Red.Sprintf("❌ CLI probe failed: %v", err))
			log.Warnw("CLI probe failed", "binary", client.Binary(), "error", err)
			hasErrors = true
		} else {
			fmt.Fprintln(outputWriter, color.Green.Sprintf("✅ %s reachable (%s)",
				client.Binary(), version))
			if client.TargetOrg() != "" {
				fmt.Fprintf(outputWriter, "Target org: %s\n", client.TargetOrg())
			}
		}
	}

	if hasErrors {
		return fmt.Errorf("validation failed")
	}

	fmt.Fprintf(outputWriter, "\n=== Validation Complete ===\n")
	fmt.Fprintln(outputWriter, color.Green.Sprint("✅ All checks passed"))
	return nil
}
