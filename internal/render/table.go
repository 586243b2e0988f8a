package render

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"tripscan/internal/domain"
)

// SummaryTable renders one row per collection with its expected-directory
// statuses, extras and issues.
func SummaryTable(result domain.Result, expectedDirs []string) string {
	if len(expectedDirs) == 0 {
		expectedDirs = domain.DefaultExpectedDirs
	}
	rows := Flatten(result, nil)

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := table.Row{"Site", "Puck", "Pin", "Collection"}
	for _, name := range expectedDirs {
		header = append(header, name)
	}
	header = append(header, "Extras", "Issues")
	tw.AppendHeader(header)

	for _, row := range rows {
		record := table.Row{row.Site, row.Puck, row.Pin, row.Collection}
		for _, name := range expectedDirs {
			cell, ok := row.Expected[name]
			if ok && cell.Present {
				record = append(record, "OK")
			} else {
				record = append(record, "missing")
			}
		}
		record = append(record,
			strings.Join(row.Extras, ", "),
			strings.Join(row.Issues, "; "),
		)
		tw.AppendRow(record)
	}

	columnConfigs := make([]table.ColumnConfig, 0, len(header))
	for i := range header {
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       text.AlignLeft,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}
