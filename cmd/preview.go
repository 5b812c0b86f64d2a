package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mfekete/quizgen/internal/quiz"
	"github.com/mfekete/quizgen/internal/ui/theme"
)

var previewCmd = &cobra.Command{
	Use:   "preview <quiz.json>",
	Short: "Print a generated quiz with answers marked (no database)",
	Long: `Render a quiz file as static text, one question per block, with the
correct answer marked. Useful for reviewing generated quizzes before
loading them onto the party platform.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := quiz.LoadFile(args[0])
		if err != nil {
			return err
		}

		title := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		fmt.Println(theme.Title.Render(title))
		fmt.Println(theme.Subtitle.Render(fmt.Sprintf("%d questions", len(q.Questions))))
		fmt.Println()

		for i, qu := range q.Questions {
			fmt.Printf("%s %s\n", theme.Hint.Render(fmt.Sprintf("%2d.", i+1)), theme.Body.Render(qu.Text))
			fmt.Printf("    %s\n", theme.Hint.Render(fmt.Sprintf("%ds to answer", qu.WaitSeconds)))

			switch qu.Answer.Type {
			case quiz.AnswerTrueFalse:
				answer := "False"
				if qu.Answer.TrueFalse.IsTrue {
					answer = "True"
				}
				fmt.Printf("    %s\n", theme.Correct.Render("✓ "+answer))
			case quiz.AnswerMultiChoice:
				for _, opt := range qu.Answer.Choices {
					if opt.IsCorrect {
						fmt.Printf("    %s\n", theme.Correct.Render("✓ "+opt.Text))
					} else {
						fmt.Printf("      %s\n", theme.Body.Render(opt.Text))
					}
				}
			}
			fmt.Println()
		}
		return nil
	},
}
