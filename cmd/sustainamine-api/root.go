package main

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "sustainamine-api",
	Short: "SustainaMine LCA estimate API server",
}

func init() {
	rootCmd.AddCommand(runCmd)
}
