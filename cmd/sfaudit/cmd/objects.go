package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/sfaudit/internal/logger"
	"github.com/dbsmedya/sfaudit/internal/salesforce"
)

var objectsAll bool

var objectsCmd = &cobra.Command{
	Use:   "objects",
	Short: "List custom metadata types in the org",
	Long: `Objects lists the custom metadata types the target org reports,
the same discovery an audit with --from-org would run.

Example:
  sfaudit objects
  sfaudit objects --all`,
	RunE: runObjects,
}

func init() {
	objectsCmd.Flags().BoolVar(&objectsAll, "all", false,
		"List every custom object, not just custom metadata types")

	rootCmd.AddCommand(objectsCmd)
}

func runObjects(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	client, err := salesforce.NewClient(&cfg.Salesforce)
	if err != nil {
		return fmt.Errorf("failed to create salesforce client: %w", err)
	}

	log.Debugw("Listing custom objects",
		"binary", client.Binary(),
		"target_org", client.TargetOrg(),
	)

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Audit.CallTimeoutSeconds)*time.Second)
	defer cancel()

	names, err := client.ListCustomObjects(ctx)
	if err != nil {
		return fmt.Errorf("failed to list custom objects: %w", err)
	}

	var shown []string
	for _, name := range names {
		if objectsAll || strings.HasSuffix(name, cfg.Audit.ObjectSuffix) {
			shown = append(shown, name)
		}
	}

	if len(shown) == 0 {
		cmd.Printf("No matching objects found (listed %d)\n", len(names))
		return nil
	}

	for i, name := range shown {
		cmd.Printf("%d. %s\n", i+1, name)
	}
	cmd.Printf("\nTotal: %d object(s)\n", len(shown))
	return nil
}
