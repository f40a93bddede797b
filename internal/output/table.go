package output

import (
	"fmt"
	"io"
	"time"

	"github.com/aryankumar/cmdpool/internal/executor"
	"github.com/olekukonko/tablewriter"
)

// TableFormatter formats the final report as a table
type TableFormatter struct {
	options *Options
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(opts *Options) *TableFormatter {
	if opts == nil {
		opts = &Options{}
	}
	return &TableFormatter{
		options: opts,
	}
}

// Format outputs the run report as a two-column table followed by
// per-class duration statistic rows for non-empty classes
func (f *TableFormatter) Format(w io.Writer, report executor.Report) error {
	colors := NewColorScheme(w, f.options.NoColor)

	table := f.createTable(w)

	headers := []string{"METRIC", "VALUE"}
	if !f.options.NoHeaders {
		if colors.Disabled {
			table.SetHeader(headers)
		} else {
			coloredHeaders := make([]string, len(headers))
			for i, h := range headers {
				coloredHeaders[i] = colors.Header(h)
			}
			table.SetHeader(coloredHeaders)
		}
	}

	successText := fmt.Sprintf("%d", report.Successful)
	failedText := fmt.Sprintf("%d", report.Failed)
	if !colors.Disabled {
		successText = colors.Success(successText)
		if report.Failed > 0 {
			failedText = colors.Error(failedText)
		}
	}

	table.Append([]string{"Total", fmt.Sprintf("%d", report.Total)})
	table.Append([]string{"Successful", successText})
	table.Append([]string{"Failed", failedText})
	table.Append([]string{"Success Rate", fmt.Sprintf("%.2f%%", report.SuccessRate)})

	f.appendDurationStats(table, "Success", report.Success, colors)
	f.appendDurationStats(table, "Failure", report.Failure, colors)

	table.Append([]string{"Total Run Time", f.duration(report.Elapsed, colors)})

	table.Render()
	return nil
}

// appendDurationStats adds the avg/min/max rows for one outcome class
// Classes without samples get no rows at all
func (f *TableFormatter) appendDurationStats(table *tablewriter.Table, class string, stats *executor.DurationStats, colors *ColorScheme) {
	if stats == nil {
		return
	}

	table.Append([]string{class + " Avg Duration", f.duration(stats.Average, colors)})
	table.Append([]string{class + " Min Duration", f.duration(stats.Min, colors)})
	table.Append([]string{class + " Max Duration", f.duration(stats.Max, colors)})
}

func (f *TableFormatter) duration(d time.Duration, colors *ColorScheme) string {
	text := FormatDuration(d)
	if !colors.Disabled {
		text = colors.Duration(text)
	}
	return text
}

// createTable creates a new table with kubectl-style configuration
func (f *TableFormatter) createTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)

	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)

	return table
}
