package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/holepunch/pkg/quiz"
)

// playCommand runs the interactive quiz in the terminal.
func (c *CLI) playCommand() *cobra.Command {
	var (
		seed               uint64
		minFolds, maxFolds int
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the fold-and-punch quiz interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			qopts, err := c.quizOptions(seed, minFolds, maxFolds)
			if err != nil {
				return err
			}
			if err := qopts.ValidateAndSetDefaults(); err != nil {
				return err
			}

			model := NewPlayModel(questionSource(qopts))
			if model.Err != nil {
				return model.Err
			}
			final, err := tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return fmt.Errorf("run quiz: %w", err)
			}

			m := final.(PlayModel)
			if m.Graded > 0 {
				printSuccess("Scored %d of %d", m.Correct, m.Graded)
			}
			return nil
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed of the first question (0 = random)")
	cmd.Flags().IntVar(&minFolds, "min", 0, "minimum folds per question (default from config)")
	cmd.Flags().IntVar(&maxFolds, "max", 0, "maximum folds per question (default from config)")

	return cmd
}

// questionSource returns a generator of successive questions. With a seed,
// successive questions follow quiz.NextSeed like quiz.GenerateBatch does.
func questionSource(opts quiz.Options) func() (*quiz.Question, error) {
	seed := opts.Seed
	return func() (*quiz.Question, error) {
		o := opts
		if seed != 0 {
			o.Seed = seed
			seed = quiz.NextSeed(seed)
		}
		return quiz.Generate(o)
	}
}
