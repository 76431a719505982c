package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cidgate/cidgate/pkg/build"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of cidgate",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("version: %s\n", build.Version)
		fmt.Printf("commit: %s\n", build.Commit)
		fmt.Printf("built at: %s\n", build.Date)
	},
}
