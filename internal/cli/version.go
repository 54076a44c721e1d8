package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/sustainamine/sustainamine/pkg/version"
)

type VersionOptions struct {
	GlobalOptions
}

func DefaultVersionOptions() *VersionOptions {
	return &VersionOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdVersion() *cobra.Command {
	o := DefaultVersionOptions()
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print SustainaMine version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
	}
	return cmd
}

func (o *VersionOptions) Run(ctx context.Context, args []string) error {
	versionInfo := version.Get()
	fmt.Fprintf(o.out, "SustainaMine Version: %s\n", versionInfo.String())
	return nil
}
