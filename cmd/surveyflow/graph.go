package main

import (
	"github.com/aretw0/surveyflow/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <file>",
	Short: "Export the survey graph visualization",
	Long:  `Compiles a survey and outputs a Mermaid diagram (graph TD) of the call flow.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, compiler, err := setup(cmd)
		if err != nil {
			return err
		}
		finals, _ := cmd.Flags().GetBool("finals")

		return cli.RunGraph(cmd.Context(), cmd.OutOrStdout(), compiler, cli.GraphOptions{
			Source: source(cmd),
			Path:   args[0],
			Finals: finals,
		})
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Bool("finals", false, "Highlight the questions that submit the answers")
}
