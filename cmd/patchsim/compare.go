package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/patchsim/app"
	"github.com/ludo-technologies/patchsim/domain"
	"github.com/ludo-technologies/patchsim/service"
)

// vectorInput is the JSON document read by the compare command
type vectorInput struct {
	Reference  any `json:"reference"`
	Candidates any `json:"candidates"`
}

// CompareCommand handles scoring precomputed vectors
type CompareCommand struct {
	compare compareFlags
	output  outputFlags
	bulk    bool
}

// NewCompareCommand creates a new compare command
func NewCompareCommand() *CompareCommand {
	return &CompareCommand{compare: newCompareFlags()}
}

// CreateCobraCommand creates the cobra command for vector comparison
func (c *CompareCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [vectors.json]",
		Short: "Score precomputed vectors against a reference",
		Long: `Score precomputed vectors against a reference vector.

The input is a JSON document with a "reference" vector and a list of
"candidates" vectors of the same length, read from the given file or from
standard input. Scores are printed in candidate order.

Examples:
  # Compare vectors from a file
  patchsim compare vectors.json

  # Read from standard input with Jaccard scoring
  echo '{"reference":[1,0,2],"candidates":[[1,0,2],[0,3,0]]}' | patchsim compare -s jaccard`,
		Args: cobra.MaximumNArgs(1),
		RunE: c.runCompare,
	}

	c.compare.register(cmd.Flags())
	c.output.register(cmd.Flags(), false)
	cmd.Flags().BoolVar(&c.bulk, service.FlagBulk, c.bulk, "Score all candidates in one batch")

	return cmd
}

// runCompare executes the compare command
func (c *CompareCommand) runCompare(cmd *cobra.Command, args []string) error {
	settings, err := buildSettings(newVectorizeFlags(), c.compare, c.output)
	if err != nil {
		return err
	}
	settings.Bulk = c.bulk

	loader := service.NewConfigurationLoaderWithFlags(GetExplicitFlags(cmd))
	var base *domain.SimilaritySettings
	if path := configPath(cmd); path != "" {
		if base, err = loader.LoadConfig(path); err != nil {
			return err
		}
	} else {
		base = loader.LoadDefaultConfig()
	}
	merged := loader.MergeConfig(base, &settings)

	input, err := readVectorInput(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	request := domain.CompareRequest{
		Reference:   input.Reference,
		Candidates:  input.Candidates,
		Strategy:    merged.Options.Strategy,
		MinkowskiP:  merged.Options.MinkowskiP,
		CanberraNaN: merged.Options.CanberraNaN,
		Bulk:        merged.Bulk,
	}

	useCase, err := app.NewCompareUseCase(service.NewSimilarityService(), newFormatter(cmd.OutOrStdout()))
	if err != nil {
		return fmt.Errorf("failed to create compare use case: %w", err)
	}

	return useCase.Execute(cmd.Context(), request, merged.OutputFormat, cmd.OutOrStdout())
}

// readVectorInput decodes the vector document from the named file, or from
// stdin when no file or "-" is given
func readVectorInput(stdin io.Reader, args []string) (*vectorInput, error) {
	r := stdin
	name := "standard input"
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, domain.NewFileNotFoundError(args[0], err)
		}
		defer f.Close()
		r = f
		name = args[0]
	}

	var input vectorInput
	if err := json.NewDecoder(r).Decode(&input); err != nil {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("failed to decode vectors from %s", name), err)
	}
	return &input, nil
}

// NewCompareCmd creates and returns the compare cobra command
func NewCompareCmd() *cobra.Command {
	return NewCompareCommand().CreateCobraCommand()
}
