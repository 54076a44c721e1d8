package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/sustainamine/sustainamine/internal/handlers/v1alpha1/mappers"
)

type FactorsOptions struct {
	GlobalOptions

	Output string
}

func DefaultFactorsOptions() *FactorsOptions {
	return &FactorsOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Output:        tableFormat,
	}
}

func NewCmdFactors() *cobra.Command {
	o := DefaultFactorsOptions()
	cmd := &cobra.Command{
		Use:   "factors [flags]",
		Short: "Print the emission factors in effect.",
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

func (o *FactorsOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", ")))
}

func (o *FactorsOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	return validateOutput(o.Output, legalOutputTypes)
}

func (o *FactorsOptions) Run(ctx context.Context, args []string) error {
	factors, err := o.Factors()
	if err != nil {
		return err
	}

	apiFactors := mappers.FactorsToApi(factors)
	printed, err := printStructured(o.out, o.Output, apiFactors)
	if printed {
		return err
	}

	keys := make([]string, 0, len(apiFactors))
	for k := range apiFactors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	w := tabwriter.NewWriter(o.out, 0, 8, 1, '\t', 0)
	fmt.Fprintln(w, "FACTOR\tVALUE")
	for _, k := range keys {
		fmt.Fprintf(w, "%s\t%g\n", k, apiFactors[k])
	}
	return w.Flush()
}
