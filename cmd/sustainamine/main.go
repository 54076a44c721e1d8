package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/sustainamine/sustainamine/internal/cli"
)

func main() {
	command := NewSustainaMineCommand()
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}

func NewSustainaMineCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sustainamine [flags] [options]",
		Short: "sustainamine computes illustrative LCA estimates for aluminium and copper.",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
			os.Exit(1)
		},
	}
	cmd.AddCommand(cli.NewCmdEstimate())
	cmd.AddCommand(cli.NewCmdReport())
	cmd.AddCommand(cli.NewCmdFactors())
	cmd.AddCommand(cli.NewCmdReferences())
	cmd.AddCommand(cli.NewCmdVersion())

	return cmd
}
