package cmd

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mfekete/quizgen/internal/player"
	"github.com/mfekete/quizgen/internal/quiz"
)

var playCmd = &cobra.Command{
	Use:   "play <quiz.json>",
	Short: "Play a generated quiz in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := quiz.LoadFile(args[0])
		if err != nil {
			return err
		}

		title := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		return player.Run(title, q)
	},
}
