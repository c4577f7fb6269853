package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/patchsim/domain"
	"github.com/ludo-technologies/patchsim/internal/comparer"
	"github.com/ludo-technologies/patchsim/service"
)

// StrategiesCommand lists the registered comparison strategies
type StrategiesCommand struct {
	output outputFlags
}

// NewStrategiesCommand creates a new strategies command
func NewStrategiesCommand() *StrategiesCommand {
	return &StrategiesCommand{}
}

// CreateCobraCommand creates the cobra command listing strategies
func (s *StrategiesCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strategies",
		Short: "List the available comparison strategies",
		Long: `List the comparison strategies that can be passed to --strategy.

Each strategy reports its score range. Strategies marked as batched rescale
their scores relative to the whole batch when ranking with --bulk.`,
		Args: cobra.NoArgs,
		RunE: s.runStrategies,
	}

	s.output.register(cmd.Flags(), false)

	return cmd
}

// runStrategies executes the strategies command
func (s *StrategiesCommand) runStrategies(cmd *cobra.Command, args []string) error {
	format, err := s.output.resolve()
	if err != nil {
		return domain.NewInvalidInputError("invalid output format", err)
	}

	strategies := comparer.Strategies()
	w := cmd.OutOrStdout()

	switch format {
	case domain.OutputFormatJSON:
		return service.WriteJSON(w, strategies)
	case domain.OutputFormatYAML:
		return service.WriteYAML(w, strategies)
	case domain.OutputFormatCSV:
		fmt.Fprintln(w, "name,aliases,min_score,max_score,batched")
		for _, info := range strategies {
			fmt.Fprintf(w, "%s,%s,%g,%g,%t\n", info.Name, strings.Join(info.Aliases, " "),
				info.MinScore, info.MaxScore, info.Batched)
		}
		return nil
	}

	utils := service.NewFormatUtils(false)
	var b strings.Builder
	b.WriteString(utils.FormatMainHeader("Comparison Strategies"))
	for _, info := range strategies {
		name := info.Name
		if name == comparer.DefaultStrategy {
			name += " (default)"
		}
		b.WriteString(utils.FormatSectionHeader(name))
		b.WriteString(utils.FormatLabelWithIndent(2, "Range", fmt.Sprintf("%g - %g", info.MinScore, info.MaxScore)))
		if len(info.Aliases) > 0 {
			b.WriteString(utils.FormatLabelWithIndent(2, "Aliases", strings.Join(info.Aliases, ", ")))
		}
		if info.Batched {
			b.WriteString(utils.FormatLabelWithIndent(2, "Batched", "yes"))
		}
		b.WriteString(utils.FormatLabelWithIndent(2, "About", info.Description))
		b.WriteString("\n")
	}
	_, err = fmt.Fprint(w, b.String())
	return err
}

// NewStrategiesCmd creates and returns the strategies cobra command
func NewStrategiesCmd() *cobra.Command {
	return NewStrategiesCommand().CreateCobraCommand()
}
