package main

import (
	"fmt"

	"github.com/aretw0/surveyflow/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a survey for consistency",
	Long: `Validates a survey definition, compiles it and crawls the resulting graph from
its start node, reporting dangling edges, unreachable nodes and questions that
end the call without submitting answers. With --compiled the file is read as an
already compiled workflow document.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, compiler, err := setup(cmd)
		if err != nil {
			return err
		}
		compiled, _ := cmd.Flags().GetBool("compiled")

		if err := cli.RunValidate(cmd.Context(), compiler, cli.ValidateOptions{
			Source:   source(cmd),
			Path:     args[0],
			Compiled: compiled,
		}); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Survey is valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("compiled", false, "Read the file as a compiled workflow document")
}
