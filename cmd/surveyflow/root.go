package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/surveyflow"
	"github.com/aretw0/surveyflow/internal/cli"
	"github.com/aretw0/surveyflow/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "surveyflow",
	Short: "surveyflow compiles surveys into voice-call workflows",
	Long: `surveyflow turns an ordered list of survey questions, including conditional
follow-ups, into the node and edge graph a voice-workflow engine runs during a call.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (default from "+config.EnvLogLevel+")")
	rootCmd.PersistentFlags().String("callback-url", "", "Callback URL used when a survey does not name one")
}

// loadConfig reads the environment and applies the persistent flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("callback-url") {
		cfg.CallbackURL, _ = cmd.Flags().GetString("callback-url")
	}
	return cfg, nil
}

// setup loads the configuration and builds the logger and compiler shared by commands.
func setup(cmd *cobra.Command) (config.Config, *slog.Logger, *surveyflow.Compiler, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return cfg, nil, nil, err
	}
	logger, err := cli.NewLogger(cfg.LogLevel)
	if err != nil {
		return cfg, nil, nil, err
	}
	compiler := surveyflow.New(
		surveyflow.WithLogger(logger),
		surveyflow.WithCallbackURL(cfg.CallbackURL),
	)
	return cfg, logger, compiler, nil
}

func source(cmd *cobra.Command) cli.Source {
	return cli.Source{Stdin: cmd.InOrStdin()}
}
