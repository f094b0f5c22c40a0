package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dbsmedya/sfaudit/internal/stats"
)

var tableHeader = []string{"Object", "Field", "Longest", "Shortest", "Limit", "Count", "Type Info"}

// WriteTable renders the report as a padded text table, one group of rows
// per object with a separator line closing each group. Cell padding is
// width-aware, so labels with wide runes stay aligned.
func WriteTable(w io.Writer, rep *stats.UsageReport) error {
	if rep == nil || rep.Empty() {
		_, err := fmt.Fprintln(w, "No oversized fields found.")
		return err
	}

	var groups [][][]string
	for _, objectName := range rep.Objects() {
		var rows [][]string
		for _, stat := range rep.Stats(objectName) {
			rows = append(rows, []string{
				stat.Object,
				stat.Field,
				strconv.Itoa(stat.Longest),
				strconv.Itoa(stat.Shortest),
				strconv.Itoa(stat.DeclaredLimit),
				strconv.Itoa(stat.Count),
				stat.TypeInfo,
			})
		}
		groups = append(groups, rows)
	}

	widths := make([]int, len(tableHeader))
	for i, header := range tableHeader {
		widths[i] = runewidth.StringWidth(header)
	}
	for _, rows := range groups {
		for _, row := range rows {
			for i, cell := range row {
				if cw := runewidth.StringWidth(cell); cw > widths[i] {
					widths[i] = cw
				}
			}
		}
	}

	writeRow := func(cells []string) error {
		padded := make([]string, len(cells))
		for i, cell := range cells {
			padded[i] = runewidth.FillRight(cell, widths[i])
		}
		line := strings.TrimRight(strings.Join(padded, "  "), " ")
		_, err := fmt.Fprintln(w, line)
		return err
	}

	total := 0
	for _, width := range widths {
		total += width
	}
	separator := strings.Repeat("-", total+2*(len(widths)-1))

	if err := writeRow(tableHeader); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, separator); err != nil {
		return err
	}
	for _, rows := range groups {
		for _, row := range rows {
			if err := writeRow(row); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, separator); err != nil {
			return err
		}
	}
	return nil
}
