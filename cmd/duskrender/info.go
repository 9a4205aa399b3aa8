package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/duskhall/render/gpu"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the GPU adapter the renderer would use",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := gpu.New(gpu.Config{Width: 64, Height: 64})
		if err != nil {
			return describeFailure(err)
		}
		defer r.Close()

		info := r.Info()
		fmt.Printf("Device:  %s\n", info.Name)
		fmt.Printf("Type:    %v\n", info.DeviceType)
		fmt.Printf("Backend: %v\n", info.Backend)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
