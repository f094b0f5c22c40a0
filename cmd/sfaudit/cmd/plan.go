package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/sfaudit/internal/auditor"
	"github.com/dbsmedya/sfaudit/internal/logger"
	"github.com/dbsmedya/sfaudit/internal/salesforce"
)

var (
	planFromOrg bool
	planObjects []string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show which fields an audit would query",
	Long: `Plan describes and classifies the selected objects and displays the
flagged fields and queries without running any of them.

The plan shows:
  - The resolved object selection
  - Flagged fields per object with declared size and threshold
  - The SOQL query the audit would run per object

Example:
  sfaudit plan --from-org
  sfaudit plan -l Limit_Config__mdt`,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().BoolVarP(&planFromOrg, "from-org", "f", false,
		"Plan for every custom metadata type discovered in the org")
	planCmd.Flags().StringSliceVarP(&planObjects, "objects", "l", nil,
		"Comma-separated object names to plan for")

	planCmd.MarkFlagsMutuallyExclusive("from-org", "objects")
	planCmd.MarkFlagsOneRequired("from-org", "objects")

	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
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

	aud, err := auditor.NewAuditor(cfg, client, log)
	if err != nil {
		return fmt.Errorf("failed to create auditor: %w", err)
	}

	ctx := auditor.SetupSignalHandler(func(sig os.Signal) {
		log.Warnw("Received shutdown signal - cancelling in-flight calls", "signal", sig.String())
	})

	plan, err := aud.Plan(ctx, auditor.Selection{
		Objects: planObjects,
		FromOrg: planFromOrg,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Warn("Plan cancelled by user")
			return nil
		}
		return fmt.Errorf("plan failed: %w", err)
	}

	printHeader("Audit Plan")

	fmt.Fprintln(outputWriter)
	printSection("Selection")
	if planFromOrg {
		fmt.Fprintf(outputWriter, "  Source: org discovery (suffix %s)\n", cfg.Audit.ObjectSuffix)
	} else {
		fmt.Fprintf(outputWriter, "  Source: explicit list\n")
	}
	fmt.Fprintf(outputWriter, "  Objects: %d\n", len(plan.Objects))
	if plan.DescribeFailures > 0 {
		fmt.Fprintln(outputWriter, color.Yellow.Sprintf(
			"  Describe failures: %d (left out of the plan)", plan.DescribeFailures))
	}

	fmt.Fprintln(outputWriter)
	printSection("Flagged Fields")
	if plan.Classified.TotalFields() == 0 {
		fmt.Fprintln(outputWriter, "  (none)")
	}
	for _, objectName := range plan.Classified.Objects() {
		fields := plan.Classified.Fields(objectName)
		if len(fields) == 0 {
			continue
		}
		fmt.Fprintf(outputWriter, "  %s\n", objectName)
		for _, d := range fields {
			fmt.Fprintf(outputWriter, "    - %s (%s, declared %d > limit %d)\n",
				d.Name, d.Type, d.DeclaredLimit(), d.Threshold)
		}
	}

	fmt.Fprintln(outputWriter)
	printSection("Queries")
	if len(plan.Queries) == 0 {
		fmt.Fprintln(outputWriter, "  (none)")
	}
	for i, q := range plan.Queries {
		fmt.Fprintf(outputWriter, "  [%d] %s\n", i+1, q.SOQL)
	}

	return nil
}

// printHeader prints a formatted header
func printHeader(format string, args ...interface{}) {
	title := fmt.Sprintf(format, args...)
	width := len(title) + 4
	fmt.Fprintln(outputWriter, strings.Repeat("=", width))
	fmt.Fprintf(outputWriter, "  %s\n", title)
	fmt.Fprintln(outputWriter, strings.Repeat("=", width))
}

// printSection prints a section header
func printSection(title string) {
	fmt.Fprintf(outputWriter, "[%s]\n", title)
	fmt.Fprintln(outputWriter, strings.Repeat("-", len(title)+2))
}
