package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/patchsim/app"
	"github.com/ludo-technologies/patchsim/domain"
	"github.com/ludo-technologies/patchsim/service"
)

// RankCommand handles ranking candidate patches against an original
type RankCommand struct {
	vectorize vectorizeFlags
	compare   compareFlags
	output    outputFlags

	bulk            bool
	skipInvalid     bool
	workers         int
	includePatterns []string
	excludePatterns []string
	noProgress      bool
}

// NewRankCommand creates a new rank command
func NewRankCommand() *RankCommand {
	return &RankCommand{
		vectorize:       newVectorizeFlags(),
		compare:         newCompareFlags(),
		skipInvalid:     domain.DefaultSkipInvalid,
		workers:         domain.DefaultWorkers,
		includePatterns: domain.DefaultIncludePatterns,
		excludePatterns: domain.DefaultExcludePatterns,
	}
}

// CreateCobraCommand creates the cobra command for ranking
func (r *RankCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rank <original> <candidates...>",
		Short: "Rank candidate patches by similarity to the original",
		Long: `Rank candidate patches by their structural similarity to the original.

Each candidate is aligned with the original on its own and scored. Directories
are searched for source files using the include and exclude patterns; the
original itself is never ranked against itself.

With --bulk, all candidates are scored in one batch so that distance
strategies can rescale scores relative to the most distant candidate.

Examples:
  # Rank every Java file in a directory
  patchsim rank Original.java candidates/

  # Rank two candidates with bulk Euclidean scoring
  patchsim rank --strategy euclidean --bulk Original.java a.java b.java

  # Fail instead of scoring unparsable candidates 0
  patchsim rank --skip-invalid=false Original.java candidates/`,
		Args: cobra.MinimumNArgs(2),
		RunE: r.runRank,
	}

	r.vectorize.register(cmd.Flags())
	r.compare.register(cmd.Flags())
	r.output.register(cmd.Flags(), true)

	cmd.Flags().BoolVar(&r.bulk, service.FlagBulk, r.bulk,
		"Score all candidates in one batch")
	cmd.Flags().BoolVar(&r.skipInvalid, service.FlagSkipInvalid, r.skipInvalid,
		"Score unparsable candidates 0 instead of failing")
	cmd.Flags().IntVarP(&r.workers, service.FlagWorkers, "j", r.workers,
		"Concurrent vectorization workers (0 = one per CPU)")
	cmd.Flags().StringSliceVar(&r.includePatterns, service.FlagInclude, r.includePatterns,
		"Glob patterns of candidate files to include")
	cmd.Flags().StringSliceVar(&r.excludePatterns, service.FlagExclude, r.excludePatterns,
		"Glob patterns of candidate files to exclude")
	cmd.Flags().BoolVar(&r.noProgress, "no-progress", false, "Disable the progress bar")

	return cmd
}

// runRank executes the rank command
func (r *RankCommand) runRank(cmd *cobra.Command, args []string) error {
	settings, err := buildSettings(r.vectorize, r.compare, r.output)
	if err != nil {
		return err
	}
	settings.Bulk = r.bulk
	settings.SkipInvalid = r.skipInvalid
	settings.Workers = r.workers
	settings.IncludePatterns = r.includePatterns
	settings.ExcludePatterns = r.excludePatterns

	request := domain.RankRequest{
		OriginalPath:   args[0],
		CandidatePaths: args[1:],
		Settings:       settings,
		OutputWriter:   cmd.OutOrStdout(),
		ConfigPath:     configPath(cmd),
	}

	var progress domain.ProgressManager = service.NoopProgressManager{}
	if !r.noProgress {
		pm := service.NewProgressManager()
		defer pm.Close()
		progress = pm
	}

	useCase, err := app.NewRankUseCaseBuilder().
		WithService(service.NewSimilarityService()).
		WithReader(service.NewFileReader()).
		WithFormatter(newFormatter(cmd.OutOrStdout())).
		WithConfigLoader(service.NewConfigurationLoaderWithFlags(GetExplicitFlags(cmd))).
		WithProgress(progress).
		Build()
	if err != nil {
		return fmt.Errorf("failed to create rank use case: %w", err)
	}

	return useCase.Execute(cmd.Context(), request)
}

// NewRankCmd creates and returns the rank cobra command
func NewRankCmd() *cobra.Command {
	return NewRankCommand().CreateCobraCommand()
}
