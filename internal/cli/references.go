package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/sustainamine/sustainamine/internal/handlers/v1alpha1/mappers"
)

type ReferencesOptions struct {
	GlobalOptions

	Output string
}

func DefaultReferencesOptions() *ReferencesOptions {
	return &ReferencesOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Output:        tableFormat,
	}
}

func NewCmdReferences() *cobra.Command {
	o := DefaultReferencesOptions()
	cmd := &cobra.Command{
		Use:   "references",
		Short: "Print the data sources and regulatory references.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *ReferencesOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", ")))
}

func (o *ReferencesOptions) Validate(args []string) error {
	return validateOutput(o.Output, legalOutputTypes)
}

func (o *ReferencesOptions) Run(ctx context.Context, args []string) error {
	refs := mappers.ReferencesToApi()
	printed, err := printStructured(o.out, o.Output, refs)
	if printed {
		return err
	}

	w := tabwriter.NewWriter(o.out, 0, 8, 1, '\t', 0)
	fmt.Fprintln(w, "KEY\tTITLE\tURL")
	for _, s := range refs.Sources {
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.Key, s.Title, s.URL)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, refs.Disclaimer)
	return w.Flush()
}
