package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/duskhall/render/gpu"
)

var statusCmd = &cobra.Command{
	Use:   "status <code>",
	Short: "Translate a device status code to its diagnostic name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code, err := strconv.ParseInt(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("not a status code: %q", args[0])
		}
		fmt.Println(gpu.Status(code).String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
