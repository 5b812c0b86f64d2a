package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mfekete/quizgen/internal/agent"
	"github.com/mfekete/quizgen/internal/batch"
	"github.com/mfekete/quizgen/internal/llm"
	"github.com/mfekete/quizgen/internal/logger"
	"github.com/mfekete/quizgen/internal/quiz"
	"github.com/mfekete/quizgen/internal/research"
	"github.com/mfekete/quizgen/internal/store"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate quiz files for every theme in the theme file",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd)
	},
}

func init() {
	generateCmd.Flags().String("themes", "", "Theme file to read (overrides config)")
	generateCmd.Flags().String("output", "", "Directory to write quiz JSON files into (overrides config)")
}

// runGenerate wires the full pipeline: store, LLM provider, research
// toolbox, agent, and the batch runner.
func runGenerate(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetString("themes"); v != "" {
		cfg.ThemeFile = v
	}
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		cfg.OutputDir = v
	}

	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer st.Close()

	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	toolbox := research.NewToolbox(log)
	toolbox.DefaultRegion = cfg.Research.Region
	toolbox.DefaultLang = cfg.Research.Language

	quizCfg := quiz.DefaultConfig()
	quizCfg.MinQuestions = cfg.MinQuestions
	quizCfg.MaxAttempts = cfg.MaxAttempts

	label := fmt.Sprintf("%s %s", filepath.Base(cfg.ThemeFile), time.Now().Format("2006-01-02 15:04"))
	ag := agent.New(provider,
		agent.WithToolbox(toolbox),
		agent.WithSchema(quiz.Schema),
		agent.WithSystem(quiz.SystemPrompt(cfg.MinQuestions)),
		agent.WithMaxTurns(cfg.MaxTurns),
		agent.WithSampling(quizCfg.MaxTokens, quizCfg.Temperature),
		agent.WithLogger(log),
		agent.WithSession(st.SessionRepo(), label),
	)

	gen := quiz.NewGenerator(ag, quizCfg, log)
	runner := batch.NewRunner(gen, cfg.OutputDir, log)

	result, err := runner.Run(ctx, cfg.ThemeFile)
	if err != nil {
		return err
	}

	fmt.Printf("Done: %d generated, %d failed, %d skipped.\n",
		result.Generated, result.Failed, result.Skipped)
	for name, path := range result.Files {
		fmt.Printf("  %-24s %s\n", name, path)
	}
	return nil
}
