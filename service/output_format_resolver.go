package service

import (
	"fmt"

	"github.com/ludo-technologies/patchsim/domain"
)

// OutputFormatResolver resolves the output format from the --format value and
// the --json, --yaml and --csv shortcut flags.
type OutputFormatResolver struct{}

func NewOutputFormatResolver() *OutputFormatResolver { return &OutputFormatResolver{} }

// Determine evaluates the format flags. At most one shortcut may be set, and
// it may not contradict a non-empty format name. With neither, format is
// parsed as is, so an empty name selects text.
func (r *OutputFormatResolver) Determine(format string, json, yaml, csv bool) (domain.OutputFormat, error) {
	formatCount := 0
	var shortcut domain.OutputFormat

	if json {
		formatCount++
		shortcut = domain.OutputFormatJSON
	}
	if yaml {
		formatCount++
		shortcut = domain.OutputFormatYAML
	}
	if csv {
		formatCount++
		shortcut = domain.OutputFormatCSV
	}

	if formatCount > 1 {
		return "", fmt.Errorf("only one output format flag can be specified")
	}
	if formatCount == 0 {
		return domain.ParseOutputFormat(format)
	}
	if format != "" && domain.OutputFormat(format) != shortcut {
		return "", fmt.Errorf("--%s conflicts with --format %s", shortcut, format)
	}
	return shortcut, nil
}
