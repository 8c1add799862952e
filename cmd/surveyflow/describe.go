package main

import (
	"os"

	"github.com/aretw0/surveyflow/internal/cli"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var describeCmd = &cobra.Command{
	Use:   "describe <file>",
	Short: "Summarize a compiled survey",
	Long:  `Compiles a survey and prints a markdown summary, styled when writing to a terminal.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, compiler, err := setup(cmd)
		if err != nil {
			return err
		}
		raw, _ := cmd.Flags().GetBool("raw")

		opts := cli.DescribeOptions{Source: source(cmd), Path: args[0]}
		if f, ok := cmd.OutOrStdout().(*os.File); ok && !raw && term.IsTerminal(int(f.Fd())) {
			opts.Render = true
			if width, _, err := term.GetSize(int(f.Fd())); err == nil {
				opts.Width = width
			}
		}
		return cli.RunDescribe(cmd.Context(), cmd.OutOrStdout(), compiler, opts)
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().Bool("raw", false, "Print plain markdown even on a terminal")
}
