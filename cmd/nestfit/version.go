// Version command for the nestfit CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nestfit/nestfit/pkg/nestfit"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the nestfit version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("nestfit", nestfit.Version)
	},
}
