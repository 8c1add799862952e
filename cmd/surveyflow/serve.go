package main

import (
	"github.com/aretw0/surveyflow/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP compile server",
	Long: `Starts the compile API over HTTP. Compiled workflows are cached in Redis when
SURVEYFLOW_REDIS_URL is set, in memory otherwise.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, _, err := setup(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.Addr, _ = cmd.Flags().GetString("addr")
		}
		if cmd.Flags().Changed("redis-url") {
			cfg.RedisURL, _ = cmd.Flags().GetString("redis-url")
		}

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		quiet, _ := cmd.Flags().GetBool("quiet")
		banner := cmd.ErrOrStderr()
		if quiet {
			banner = nil
		}
		return cli.RunServe(sigCtx, banner, cfg, logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Address to listen on (default from SURVEYFLOW_ADDR or :8080)")
	serveCmd.Flags().String("redis-url", "", "Redis URL for the workflow cache")
	serveCmd.Flags().Bool("quiet", false, "Do not print the banner")
}
