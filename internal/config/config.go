// Package config loads application settings from an optional YAML file
// with environment variable overrides. LLM provider credentials are
// handled separately by the llm package.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	// ThemeFile is the JSON file listing the themes to generate.
	ThemeFile string `yaml:"theme_file"`

	// OutputDir is where quiz JSON files are written.
	OutputDir string `yaml:"output_dir"`

	// MinQuestions is the minimum question count per quiz.
	MinQuestions int `yaml:"min_questions"`

	// MaxAttempts bounds the generate-validate-repair loop per theme.
	MaxAttempts int `yaml:"max_attempts"`

	// MaxTurns bounds tool-call rounds within a single attempt.
	MaxTurns int `yaml:"max_turns"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// DBPath overrides the default session/event database location.
	// Empty means the XDG data directory.
	DBPath string `yaml:"db_path"`

	Research Research `yaml:"research"`
}

// Research configures the research tools' locale defaults. The model
// may still pick another region or language per call.
type Research struct {
	// Region is the DuckDuckGo region code, e.g. "us-en", "hu-hu".
	Region string `yaml:"region"`

	// Language is the Wikipedia language code, e.g. "en", "hu".
	Language string `yaml:"language"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Config {
	return &Config{
		ThemeFile:    "thema.json",
		OutputDir:    "quiz",
		MinQuestions: 10,
		MaxAttempts:  4,
		MaxTurns:     50,
		LogLevel:     "info",
		LogFormat:    "pretty",
		Research: Research{
			Region:   "us-en",
			Language: "en",
		},
	}
}

// Load reads configuration in order of precedence: defaults, then the
// YAML file, then QUIZGEN_* environment variables. A .env file is
// loaded first if present but is optional. path may be empty, in which
// case "quizgen.yaml" is used when it exists.
func Load(path string) (*Config, error) {
	_ = godotenv.Load() // .env is optional

	cfg := Default()

	explicit := path != ""
	if path == "" {
		path = "quizgen.yaml"
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// No config file is fine.
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.MinQuestions < 1 {
		return fmt.Errorf("min_questions must be at least 1, got %d", c.MinQuestions)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be at least 1, got %d", c.MaxAttempts)
	}
	if c.MaxTurns < 1 {
		return fmt.Errorf("max_turns must be at least 1, got %d", c.MaxTurns)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.ThemeFile = getEnv("QUIZGEN_THEME_FILE", cfg.ThemeFile)
	cfg.OutputDir = getEnv("QUIZGEN_OUTPUT_DIR", cfg.OutputDir)
	cfg.MinQuestions = getEnvInt("QUIZGEN_MIN_QUESTIONS", cfg.MinQuestions)
	cfg.MaxAttempts = getEnvInt("QUIZGEN_MAX_ATTEMPTS", cfg.MaxAttempts)
	cfg.MaxTurns = getEnvInt("QUIZGEN_MAX_TURNS", cfg.MaxTurns)
	cfg.LogLevel = getEnv("QUIZGEN_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("QUIZGEN_LOG_FORMAT", cfg.LogFormat)
	cfg.DBPath = getEnv("QUIZGEN_DB_PATH", cfg.DBPath)
	cfg.Research.Region = getEnv("QUIZGEN_SEARCH_REGION", cfg.Research.Region)
	cfg.Research.Language = getEnv("QUIZGEN_WIKI_LANG", cfg.Research.Language)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
