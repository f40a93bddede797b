// Package output handles all console output for cmdpool: the live task
// event stream (Reporter) and the final run report in human, table, JSON
// and YAML formats (Formatter).
//
// Colors are applied via a ColorScheme that disables itself for non-TTY
// writers or when --no-color is set.
package output
