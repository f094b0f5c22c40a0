package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/sfaudit/internal/auditor"
	"github.com/dbsmedya/sfaudit/internal/logger"
	"github.com/dbsmedya/sfaudit/internal/report"
	"github.com/dbsmedya/sfaudit/internal/salesforce"
)

var (
	auditFromOrg bool
	auditObjects []string
	auditCSV     bool
	auditOutput  string
	auditTable   bool
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit field usage of custom metadata types",
	Long: `Audit measures how much of each oversized field's declared size the
stored values actually use.

The audit process follows these steps:
  1. Resolve the object selection (explicit list or org discovery)
  2. Describe each object and flag oversized custom fields
  3. Query the stored values of every flagged field
  4. Aggregate longest, shortest, and count per field

Failed describe or query calls are logged and skipped; the report covers
whatever succeeded.

Example:
  sfaudit audit --from-org --csv
  sfaudit audit -l Limit_Config__mdt,Feature_Flag__mdt --table`,
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().BoolVarP(&auditFromOrg, "from-org", "f", false,
		"Audit every custom metadata type discovered in the org")
	auditCmd.Flags().StringSliceVarP(&auditObjects, "objects", "l", nil,
		"Comma-separated object names to audit")
	auditCmd.Flags().BoolVarP(&auditCSV, "csv", "c", false,
		"Write the report as CSV")
	auditCmd.Flags().StringVarP(&auditOutput, "output", "o", "",
		"CSV output path (defaults to output.csv_file from config)")
	auditCmd.Flags().BoolVarP(&auditTable, "table", "m", false,
		"Print the report as a text table")

	auditCmd.MarkFlagsMutuallyExclusive("from-org", "objects")
	auditCmd.MarkFlagsOneRequired("from-org", "objects")

	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Initialize logger
	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Create salesforce client
	client, err := salesforce.NewClient(&cfg.Salesforce)
	if err != nil {
		return fmt.Errorf("failed to create salesforce client: %w", err)
	}

	aud, err := auditor.NewAuditor(cfg, client, log)
	if err != nil {
		return fmt.Errorf("failed to create auditor: %w", err)
	}

	log.Infow("Starting audit",
		"from_org", auditFromOrg,
		"objects", len(auditObjects),
		"binary", client.Binary(),
		"target_org", client.TargetOrg(),
	)

	// Handle graceful shutdown
	ctx := auditor.SetupSignalHandler(func(sig os.Signal) {
		log.Warnw("Received shutdown signal - cancelling in-flight calls", "signal", sig.String())
	})

	result, err := aud.Run(ctx, auditor.Selection{
		Objects: auditObjects,
		FromOrg: auditFromOrg,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Warn("Audit cancelled by user")
			return nil
		}
		return fmt.Errorf("audit failed: %w", err)
	}

	if auditCSV {
		path := auditOutput
		if path == "" {
			path = cfg.Output.CSVFile
		}
		if err := report.WriteCSVFile(path, result.Report); err != nil {
			return fmt.Errorf("failed to write csv report: %w", err)
		}
		fmt.Fprintf(outputWriter, "CSV report written to %s\n", path)
	}

	if auditTable {
		if err := report.WriteTable(outputWriter, result.Report); err != nil {
			return fmt.Errorf("failed to print table: %w", err)
		}
	}

	if !auditCSV && !auditTable {
		if err := report.WriteInline(outputWriter, result.Report); err != nil {
			return fmt.Errorf("failed to print report: %w", err)
		}
	}

	printAuditSummary(result)
	return nil
}

func printAuditSummary(result *auditor.Result) {
	fmt.Fprintf(outputWriter, "\n=== Audit Complete ===\n")
	fmt.Fprintf(outputWriter, "Duration: %s\n", result.Duration)
	fmt.Fprintf(outputWriter, "Objects Selected: %d\n", result.ObjectsSelected)
	fmt.Fprintf(outputWriter, "Flagged Fields: %d\n", result.FlaggedFields)
	fmt.Fprintf(outputWriter, "Queries Run: %d\n", result.QueriesPlanned)
	fmt.Fprintf(outputWriter, "Records Scanned: %d\n", result.RecordsScanned)

	if result.DescribeFailures > 0 || result.QueryFailures > 0 {
		fmt.Fprintln(outputWriter, color.Yellow.Sprintf(
			"Skipped: %d describe and %d query call(s) failed",
			result.DescribeFailures, result.QueryFailures))
	}
}
