package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/duskhall/render"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("duskrender version %s\n", render.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
