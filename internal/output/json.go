package output

import (
	"encoding/json"
	"io"

	"github.com/aryankumar/cmdpool/internal/executor"
)

// JSONFormatter formats the final report as JSON
type JSONFormatter struct {
	options *Options
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(opts *Options) *JSONFormatter {
	if opts == nil {
		opts = &Options{}
	}
	return &JSONFormatter{
		options: opts,
	}
}

// Format outputs the run report as indented JSON
// Duration statistics for an empty outcome class are omitted entirely
func (f *JSONFormatter) Format(w io.Writer, report executor.Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newReportView(report))
}
