package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/surveyflow"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of surveyflow",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "surveyflow version %s\n", strings.TrimSpace(surveyflow.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
