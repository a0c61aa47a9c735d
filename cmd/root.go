package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/nikogura/interview-coach/pkg/config"
	"github.com/nikogura/interview-coach/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const app = "interview-coach"

//nolint:gochecknoglobals // Cobra boilerplate
var verbose bool

//nolint:gochecknoglobals // Cobra boilerplate
var jsonLogs bool

//nolint:gochecknoglobals // Cobra boilerplate
var configFile string

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   app,
	Short: "Score and coach behavioral interview answers",
	Long: `interview-coach scores practice answers to behavioral interview questions.

Each answer is rated on eight dimensions (structure, specificity, outcome, role,
company, persona, risks, clarity) weighted for the interviewer persona, checked
for red flags, and returned with follow-up questions and concrete improvements.

Scoring is deterministic and runs entirely offline.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (debug logging)")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Log in JSON format")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.interview-coach/config.json)")
}

// getVerbose returns the verbose flag value.
func getVerbose() (result bool) {
	result = verbose
	return result
}

// getConfigFile returns the config file path.
func getConfigFile() (result string) {
	result = configFile
	return result
}

// loadConfig loads configuration and applies global flag overrides.
func loadConfig() (cfg config.Config, err error) {
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = fmt.Errorf("failed to load config: %w", err)
		return cfg, err
	}

	if getVerbose() {
		cfg.Logging.Debug = true
	}
	if jsonLogs {
		cfg.Logging.JSON = true
	}

	return cfg, err
}

// newLogger builds the process logger from config.
func newLogger(cfg config.Config) (log *zap.Logger, err error) {
	log, err = logger.New(cfg.Logging.JSON, cfg.Logging.Debug)
	if err != nil {
		err = fmt.Errorf("failed to create logger: %w", err)
		return log, err
	}
	return log, err
}
