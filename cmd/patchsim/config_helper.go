package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ludo-technologies/patchsim/domain"
	"github.com/ludo-technologies/patchsim/service"
)

// shortcut flags selecting an output format
const (
	flagJSON = "json"
	flagYAML = "yaml"
	flagCSV  = "csv"
)

// GetExplicitFlags extracts which flags were explicitly set from a cobra
// command. The format shortcuts count as an explicit --format.
func GetExplicitFlags(cmd *cobra.Command) map[string]bool {
	explicitFlags := make(map[string]bool)
	if cmd != nil {
		cmd.Flags().Visit(func(f *pflag.Flag) {
			explicitFlags[f.Name] = true
			switch f.Name {
			case flagJSON, flagYAML, flagCSV:
				explicitFlags[service.FlagFormat] = true
			}
		})
	}
	return explicitFlags
}

// configPath returns the value of the persistent --config flag
func configPath(cmd *cobra.Command) string {
	if f := cmd.Flag("config"); f != nil {
		return f.Value.String()
	}
	return ""
}

// vectorizeFlags holds the flags controlling how snippets become vectors
type vectorizeFlags struct {
	language   string
	depth      int
	wrap       bool
	labels     string
	projection string
}

func newVectorizeFlags() vectorizeFlags {
	return vectorizeFlags{
		language: domain.DefaultLanguage,
		depth:    domain.DefaultEncodingDepth,
		wrap:     domain.DefaultWrapSnippets,
	}
}

func (v *vectorizeFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&v.language, service.FlagLanguage, "l", v.language,
		"Language of the snippets: java, python")
	fs.IntVarP(&v.depth, service.FlagDepth, "d", v.depth,
		"Encoding depth; vectors hold 2^depth values")
	fs.BoolVar(&v.wrap, service.FlagWrap, v.wrap,
		"Retry Java fragments inside a synthetic class")
	fs.StringVar(&v.labels, service.FlagLabels, v.labels,
		"Label enumeration file replacing the grammar's node types")
	fs.StringVar(&v.projection, service.FlagProjection, v.projection,
		"Safetensors projection applied to every vector")

	_ = fs.MarkHidden(service.FlagWrap)
}

// compareFlags holds the flags selecting and tuning the strategy
type compareFlags struct {
	strategy    string
	minkowskiP  float64
	canberraNaN bool
}

func newCompareFlags() compareFlags {
	return compareFlags{
		strategy:   domain.DefaultStrategy,
		minkowskiP: domain.DefaultMinkowskiP,
	}
}

func (c *compareFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&c.strategy, service.FlagStrategy, "s", c.strategy,
		"Comparison strategy (see 'patchsim strategies')")
	fs.Float64Var(&c.minkowskiP, service.FlagMinkowskiP, c.minkowskiP,
		"Order of the minkowski strategy")
	fs.BoolVar(&c.canberraNaN, service.FlagCanberraNaN, c.canberraNaN,
		"Let canberra produce NaN for positions that are zero in both vectors")

	_ = fs.MarkHidden(service.FlagCanberraNaN)
}

// outputFlags holds the output format flags
type outputFlags struct {
	format      string
	json        bool
	yaml        bool
	csv         bool
	showVectors bool
}

func (o *outputFlags) register(fs *pflag.FlagSet, withVectors bool) {
	fs.StringVarP(&o.format, service.FlagFormat, "f", "", "Output format: text, json, yaml, csv")
	fs.BoolVar(&o.json, flagJSON, false, "Shorthand for --format json")
	fs.BoolVar(&o.yaml, flagYAML, false, "Shorthand for --format yaml")
	fs.BoolVar(&o.csv, flagCSV, false, "Shorthand for --format csv")
	if withVectors {
		fs.BoolVar(&o.showVectors, service.FlagShowVectors, false, "Include the encoded vectors in the output")
	}
}

func (o *outputFlags) resolve() (domain.OutputFormat, error) {
	return service.NewOutputFormatResolver().Determine(o.format, o.json, o.yaml, o.csv)
}

// buildSettings assembles flag values into settings. Only the flags recorded
// by GetExplicitFlags override the configuration file.
func buildSettings(v vectorizeFlags, c compareFlags, o outputFlags) (domain.SimilaritySettings, error) {
	format, err := o.resolve()
	if err != nil {
		return domain.SimilaritySettings{}, domain.NewInvalidInputError("invalid output format", err)
	}
	return domain.SimilaritySettings{
		Options: domain.SimilarityOptions{
			Language:       v.language,
			Depth:          v.depth,
			WrapSnippets:   v.wrap,
			LabelsFile:     v.labels,
			ProjectionFile: v.projection,
			Strategy:       c.strategy,
			MinkowskiP:     c.minkowskiP,
			CanberraNaN:    c.canberraNaN,
		},
		OutputFormat: format,
		ShowVectors:  o.showVectors,
	}, nil
}
