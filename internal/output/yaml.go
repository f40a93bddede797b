package output

import (
	"io"

	"github.com/aryankumar/cmdpool/internal/executor"
	"gopkg.in/yaml.v3"
)

// YAMLFormatter formats the final report as YAML
type YAMLFormatter struct {
	options *Options
}

// NewYAMLFormatter creates a new YAML formatter
func NewYAMLFormatter(opts *Options) *YAMLFormatter {
	if opts == nil {
		opts = &Options{}
	}
	return &YAMLFormatter{
		options: opts,
	}
}

// Format outputs the run report as YAML
// Duration statistics for an empty outcome class are omitted entirely
func (f *YAMLFormatter) Format(w io.Writer, report executor.Report) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	return encoder.Encode(newReportView(report))
}
