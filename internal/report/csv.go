// Package report renders usage reports as CSV, a padded text table, or
// plain per-field lines.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dbsmedya/sfaudit/internal/stats"
)

// csvHeader is the column layout of the exported sheet.
var csvHeader = []string{"Object", "Field", "Longest", "Shortest", "Count", "Type Info"}

// WriteCSV writes the report in CSV form, one row per field in report order.
func WriteCSV(w io.Writer, rep *stats.UsageReport) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	if rep != nil {
		for _, objectName := range rep.Objects() {
			for _, stat := range rep.Stats(objectName) {
				row := []string{
					stat.Object,
					stat.Field,
					strconv.Itoa(stat.Longest),
					strconv.Itoa(stat.Shortest),
					strconv.Itoa(stat.Count),
					stat.TypeInfo,
				}
				if err := writer.Write(row); err != nil {
					return fmt.Errorf("failed to write csv row: %w", err)
				}
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteCSVFile writes the report to a file, creating or truncating it.
func WriteCSVFile(path string, rep *stats.UsageReport) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}

	if err := WriteCSV(file, rep); err != nil {
		file.Close()
		return err
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close csv file: %w", err)
	}
	return nil
}
