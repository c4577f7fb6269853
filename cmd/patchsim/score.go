package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ludo-technologies/patchsim/app"
	"github.com/ludo-technologies/patchsim/domain"
	"github.com/ludo-technologies/patchsim/service"
)

// ScoreCommand handles scoring one patched file against its original
type ScoreCommand struct {
	vectorize vectorizeFlags
	compare   compareFlags
	output    outputFlags
}

// NewScoreCommand creates a new score command
func NewScoreCommand() *ScoreCommand {
	return &ScoreCommand{
		vectorize: newVectorizeFlags(),
		compare:   newCompareFlags(),
	}
}

// CreateCobraCommand creates the cobra command for scoring
func (s *ScoreCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score <original> <patched>",
		Short: "Score a patched file against its original",
		Long: `Score how structurally similar a patched file is to its original.

The two files are parsed, the smallest subtree where they diverge is located,
and that region of each file is encoded and compared. Identical files always
receive the strategy's best score.

Examples:
  # Score a Java patch with cosine similarity
  patchsim score Original.java Patched.java

  # Use Euclidean distance and print JSON
  patchsim score --strategy euclidean --json Original.java Patched.java

  # Score Python snippets and show the encoded vectors
  patchsim score -l python --show-vectors before.py after.py`,
		Args: cobra.ExactArgs(2),
		RunE: s.runScore,
	}

	s.vectorize.register(cmd.Flags())
	s.compare.register(cmd.Flags())
	s.output.register(cmd.Flags(), true)

	return cmd
}

// runScore executes the score command
func (s *ScoreCommand) runScore(cmd *cobra.Command, args []string) error {
	settings, err := buildSettings(s.vectorize, s.compare, s.output)
	if err != nil {
		return err
	}

	request := domain.ScoreRequest{
		OriginalPath: args[0],
		PatchedPath:  args[1],
		Settings:     settings,
		OutputWriter: cmd.OutOrStdout(),
		ConfigPath:   configPath(cmd),
	}

	useCase, err := app.NewScoreUseCaseBuilder().
		WithService(service.NewSimilarityService()).
		WithReader(service.NewFileReader()).
		WithFormatter(newFormatter(cmd.OutOrStdout())).
		WithConfigLoader(service.NewConfigurationLoaderWithFlags(GetExplicitFlags(cmd))).
		Build()
	if err != nil {
		return fmt.Errorf("failed to create score use case: %w", err)
	}

	return useCase.Execute(cmd.Context(), request)
}

// newFormatter creates a formatter that colors text output on terminals
func newFormatter(w io.Writer) *service.SimilarityFormatterImpl {
	formatter := service.NewSimilarityFormatter()
	if f, ok := w.(*os.File); ok && os.Getenv("NO_COLOR") == "" {
		formatter.Color = term.IsTerminal(int(f.Fd()))
	}
	return formatter
}

// NewScoreCmd creates and returns the score cobra command
func NewScoreCmd() *cobra.Command {
	return NewScoreCommand().CreateCobraCommand()
}
