package report

import (
	"fmt"
	"io"

	"github.com/dbsmedya/sfaudit/internal/stats"
)

// WriteInline prints one line per field in report order. This is the
// terse default output for pipelines and quick terminal scans.
func WriteInline(w io.Writer, rep *stats.UsageReport) error {
	if rep == nil || rep.Empty() {
		_, err := fmt.Fprintln(w, "No oversized fields found.")
		return err
	}

	for _, objectName := range rep.Objects() {
		for _, stat := range rep.Stats(objectName) {
			line := fmt.Sprintf("%s.%s longest=%d shortest=%d count=%d limit=%d",
				stat.Object, stat.Field, stat.Longest, stat.Shortest, stat.Count, stat.DeclaredLimit)
			if stat.TypeInfo != "" {
				line += " type=" + stat.TypeInfo
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}
