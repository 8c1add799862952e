package main

import (
	"github.com/aretw0/surveyflow/internal/cli"
	"github.com/aretw0/surveyflow/pkg/domain"
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile [files...]",
	Short: "Compile survey definitions into workflow documents",
	Long: `Reads survey definitions (YAML or JSON, "-" for stdin) and writes the compiled
workflow documents as JSON. Several files are compiled in parallel.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, compiler, err := setup(cmd)
		if err != nil {
			return err
		}

		outputDir, _ := cmd.Flags().GetString("output")
		query, _ := cmd.Flags().GetString("query")
		language, _ := cmd.Flags().GetString("language")
		parallel, _ := cmd.Flags().GetInt("parallel")

		return cli.RunCompile(cmd.Context(), cmd.OutOrStdout(), compiler, cli.CompileOptions{
			Source:      source(cmd),
			Files:       args,
			OutputDir:   outputDir,
			Query:       query,
			Language:    domain.Language(language),
			Parallelism: parallel,
		})
	},
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringP("output", "o", "", "Directory receiving one <name>.json per survey")
	compileCmd.Flags().StringP("query", "q", "", "jq expression applied to each compiled workflow")
	compileCmd.Flags().StringP("language", "l", "", "Override the survey language (en, es)")
	compileCmd.Flags().Int("parallel", 0, "Maximum concurrent compilations (default: number of CPUs)")
}
