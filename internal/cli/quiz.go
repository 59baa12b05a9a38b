package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/holepunch/pkg/paper"
	"github.com/matzehuels/holepunch/pkg/quiz"
	"github.com/matzehuels/holepunch/pkg/render"
)

type quizOpts struct {
	count    int
	seed     uint64
	minFolds int
	maxFolds int
	answers  bool
	asJSON   bool
}

// quizCommand prints generated questions: a folded, punched sheet whose
// holes the reader has to place on the unfolded paper.
func (c *CLI) quizCommand() *cobra.Command {
	opts := quizOpts{count: 1}

	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Generate fold-and-punch questions",
		Example: `  holepunch quiz
  holepunch quiz -n 10 --seed 42 --answers
  holepunch quiz -n 50 --min 3 --max 4 --json > questions.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runQuiz(cmd.Context(), opts)
		},
	}

	cmd.Flags().IntVarP(&opts.count, "count", "n", opts.count, "number of questions")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "seed for reproducible questions (0 = random)")
	cmd.Flags().IntVar(&opts.minFolds, "min", 0, "minimum folds per question (default from config)")
	cmd.Flags().IntVar(&opts.maxFolds, "max", 0, "maximum folds per question (default from config)")
	cmd.Flags().BoolVar(&opts.answers, "answers", false, "show the unfolded answer")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print questions and answers as JSON")

	return cmd
}

func (c *CLI) quizOptions(seed uint64, minFolds, maxFolds int) (quiz.Options, error) {
	menu, err := c.catalog()
	if err != nil {
		return quiz.Options{}, err
	}
	qopts := c.Config.QuizOptions(menu)
	qopts.Seed = seed
	if minFolds > 0 {
		qopts.MinFolds = minFolds
		qopts.MaxFolds = max(qopts.MaxFolds, minFolds)
	}
	if maxFolds > 0 {
		qopts.MaxFolds = maxFolds
	}
	return qopts, nil
}

func (c *CLI) runQuiz(ctx context.Context, opts quizOpts) error {
	qopts, err := c.quizOptions(opts.seed, opts.minFolds, opts.maxFolds)
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Generating %d questions...", opts.count))
	if opts.count > 1 && !opts.asJSON {
		spinner.Start()
	}
	questions, err := quiz.GenerateBatch(ctx, opts.count, qopts)
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Generated %d questions", len(questions)))

	if opts.asJSON {
		return writeQuestionsJSON(questions)
	}
	for i, q := range questions {
		if i > 0 {
			printNewline()
		}
		if err := printQuestion(i+1, q, opts.answers); err != nil {
			return err
		}
	}
	return nil
}

type questionJSON struct {
	*quiz.Question
	Answer []paper.GridPoint `json:"answer"`
}

func writeQuestionsJSON(questions []*quiz.Question) error {
	out := make([]questionJSON, len(questions))
	for i, q := range questions {
		out[i] = questionJSON{Question: q, Answer: q.Answer()}
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printQuestion(n int, q *quiz.Question, withAnswer bool) error {
	fmt.Println(StyleTitle.Render(fmt.Sprintf("Question %d", n)) + "  " + StyleDim.Render(fmt.Sprintf("seed %d", q.Seed)))
	printKeyValue("folds", formatFolds(q.Folds))
	printKeyValue("punch", q.Punch.String())

	folded, err := render.RenderText(q.Paper, q.Paper.FoldCount(), render.WithoutTitle())
	if err != nil {
		return err
	}
	fmt.Print(folded)

	if !withAnswer {
		printNextStep("Check your answer", fmt.Sprintf("holepunch quiz --seed %d --answers", q.Seed))
		return nil
	}
	unfolded, err := render.RenderText(q.Paper, 0, render.WithoutTitle())
	if err != nil {
		return err
	}
	printInfo("answer: %s", formatPoints(q.Answer()))
	fmt.Print(unfolded)
	return nil
}

func formatFolds(folds []paper.Fold) string {
	parts := make([]string, len(folds))
	for i, f := range folds {
		parts[i] = f.String()
	}
	return strings.Join(parts, "  ")
}

func formatPoints(pts []paper.GridPoint) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = p.String()
	}
	return strings.Join(parts, " ")
}
