package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/aryankumar/cmdpool/internal/executor"
)

// Format represents the output format type for the final report
type Format string

const (
	// FormatHuman is the default console summary block
	FormatHuman Format = "human"
	// FormatTable outputs the report in a table format
	FormatTable Format = "table"
	// FormatJSON outputs the report in JSON format
	FormatJSON Format = "json"
	// FormatYAML outputs the report in YAML format
	FormatYAML Format = "yaml"
)

// ParseFormat validates an output format string
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatHuman, FormatTable, FormatJSON, FormatYAML:
		return Format(s), nil
	case "":
		return FormatHuman, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want human, table, json or yaml)", s)
	}
}

// Formatter renders a final run report to a writer
type Formatter interface {
	Format(w io.Writer, report executor.Report) error
}

// Option is a functional option for configuring formatters
type Option func(*Options)

// Options holds configuration for formatters
type Options struct {
	// NoColor disables color output
	NoColor bool

	// NoHeaders disables table headers
	NoHeaders bool
}

// WithNoColor disables color output
func WithNoColor(noColor bool) Option {
	return func(o *Options) {
		o.NoColor = noColor
	}
}

// WithNoHeaders disables table headers
func WithNoHeaders(noHeaders bool) Option {
	return func(o *Options) {
		o.NoHeaders = noHeaders
	}
}

// NewFormatter creates a new formatter based on the specified format
func NewFormatter(format Format, opts ...Option) Formatter {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	switch format {
	case FormatJSON:
		return NewJSONFormatter(options)
	case FormatYAML:
		return NewYAMLFormatter(options)
	case FormatTable:
		return NewTableFormatter(options)
	case FormatHuman:
		fallthrough
	default:
		return NewHumanFormatter(options)
	}
}

// durationStatsView is the serializable form of one outcome class's stats
type durationStatsView struct {
	Count   int    `json:"count" yaml:"count"`
	Average string `json:"average" yaml:"average"`
	Min     string `json:"min" yaml:"min"`
	Max     string `json:"max" yaml:"max"`
}

// reportView is the serializable form of a report used by the json and
// yaml formatters; durations are pre-formatted strings
type reportView struct {
	Total       int                `json:"total" yaml:"total"`
	Successful  int                `json:"successful" yaml:"successful"`
	Failed      int                `json:"failed" yaml:"failed"`
	SuccessRate string             `json:"successRate" yaml:"successRate"`
	Success     *durationStatsView `json:"successStats,omitempty" yaml:"successStats,omitempty"`
	Failure     *durationStatsView `json:"failureStats,omitempty" yaml:"failureStats,omitempty"`
	Elapsed     string             `json:"elapsed" yaml:"elapsed"`
}

// newReportView converts a report into its serializable form
func newReportView(report executor.Report) reportView {
	view := reportView{
		Total:       report.Total,
		Successful:  report.Successful,
		Failed:      report.Failed,
		SuccessRate: fmt.Sprintf("%.2f%%", report.SuccessRate),
		Elapsed:     FormatDuration(report.Elapsed),
	}
	if report.Success != nil {
		view.Success = newDurationStatsView(report.Success)
	}
	if report.Failure != nil {
		view.Failure = newDurationStatsView(report.Failure)
	}
	return view
}

func newDurationStatsView(stats *executor.DurationStats) *durationStatsView {
	return &durationStatsView{
		Count:   stats.Count,
		Average: FormatDuration(stats.Average),
		Min:     FormatDuration(stats.Min),
		Max:     FormatDuration(stats.Max),
	}
}

// HumanFormatter renders the report as the default console summary block
type HumanFormatter struct {
	options *Options
}

// NewHumanFormatter creates a new human-readable formatter
func NewHumanFormatter(opts *Options) *HumanFormatter {
	if opts == nil {
		opts = &Options{}
	}
	return &HumanFormatter{
		options: opts,
	}
}

// Format outputs the summary block: counts, success rate, per-class
// duration statistics for non-empty classes, and total run time
func (f *HumanFormatter) Format(w io.Writer, report executor.Report) error {
	colors := NewColorScheme(w, f.options.NoColor)

	var sb strings.Builder
	sb.WriteString("All tasks completed.\n")
	sb.WriteString(fmt.Sprintf("Total: %d\n", report.Total))
	sb.WriteString(fmt.Sprintf("Successful: %s\n", colors.Success("%d", report.Successful)))

	failedText := colors.Success("%d", report.Failed)
	if report.Failed > 0 {
		failedText = colors.Error("%d", report.Failed)
	}
	sb.WriteString(fmt.Sprintf("Failed: %s\n", failedText))
	sb.WriteString(fmt.Sprintf("Success Rate: %.2f%%\n", report.SuccessRate))

	if report.Success != nil {
		sb.WriteString(fmt.Sprintf("\n%s\n", colors.Header("Successful Tasks Statistics:")))
		writeDurationStats(&sb, report.Success, colors)
	}
	if report.Failure != nil {
		sb.WriteString(fmt.Sprintf("\n%s\n", colors.Header("Failed Tasks Statistics:")))
		writeDurationStats(&sb, report.Failure, colors)
	}

	sb.WriteString(fmt.Sprintf("\nTotal cmdpool execution time: %s\n",
		colors.Duration("%s", FormatDuration(report.Elapsed))))

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeDurationStats(sb *strings.Builder, stats *executor.DurationStats, colors *ColorScheme) {
	sb.WriteString(fmt.Sprintf("  Average Duration: %s\n", colors.Duration("%s", FormatDuration(stats.Average))))
	sb.WriteString(fmt.Sprintf("  Min Duration: %s\n", colors.Duration("%s", FormatDuration(stats.Min))))
	sb.WriteString(fmt.Sprintf("  Max Duration: %s\n", colors.Duration("%s", FormatDuration(stats.Max))))
}
