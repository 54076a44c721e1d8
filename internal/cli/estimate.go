package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/sustainamine/sustainamine/internal/handlers/v1alpha1/mappers"
	"github.com/sustainamine/sustainamine/internal/model"
	"github.com/sustainamine/sustainamine/internal/service/report"
	"github.com/sustainamine/sustainamine/internal/service/report/types"
)

type EstimateOptions struct {
	GlobalOptions
	InputOptions

	Output string
}

func DefaultEstimateOptions() *EstimateOptions {
	return &EstimateOptions{
		GlobalOptions: DefaultGlobalOptions(),
		InputOptions:  DefaultInputOptions(),
		Output:        tableFormat,
	}
}

func NewCmdEstimate() *cobra.Command {
	o := DefaultEstimateOptions()
	cmd := &cobra.Command{
		Use:   "estimate [flags]",
		Short: "Compute an illustrative LCA estimate.",
		Example: "  sustainamine estimate --metal Copper --ore-quality Low --route Mixed --recycled-pct 50\n" +
			"  sustainamine estimate -m Aluminium --energy Renewable -o json",
		Args: cobra.NoArgs,
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

func (o *EstimateOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	o.InputOptions.Bind(fs)

	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", ")))
}

func (o *EstimateOptions) Complete(cmd *cobra.Command, args []string) error {
	return o.GlobalOptions.Complete(cmd, args)
}

func (o *EstimateOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	return validateOutput(o.Output, legalOutputTypes)
}

func (o *EstimateOptions) Run(ctx context.Context, args []string) error {
	req, err := o.Request()
	if err != nil {
		return err
	}

	srv, err := o.EstimationService()
	if err != nil {
		return err
	}

	estimate, err := srv.Estimate(ctx, req)
	if err != nil {
		return fmt.Errorf("computing estimate: %w", err)
	}

	printed, err := printStructured(o.out, o.Output, mappers.EstimateToApi(estimate))
	if printed {
		return err
	}
	return printEstimateTable(o.out, estimate)
}

// printEstimateTable prints the same rows as the summary report.
func printEstimateTable(out io.Writer, estimate *model.Estimate) error {
	data, err := report.NewStandardEstimateProcessor().ProcessEstimate(estimate)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 8, 1, '\t', 0)
	printFields(w, "INPUT", data.Inputs)
	fmt.Fprintln(w)
	printFields(w, "RESULT", data.Outputs)
	fmt.Fprintln(w)
	fmt.Fprintln(w, data.ByProduct)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "TOPIC\tSEVERITY\tMESSAGE")
	if len(data.ComplianceFlags) == 0 {
		fmt.Fprintln(w, "None\t\tNo compliance flags raised")
	}
	for _, f := range data.ComplianceFlags {
		fmt.Fprintf(w, "%s\t%s\t%s\n", f.Topic, f.Severity, f.Message)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "RECOMMENDATIONS")
	for i, rec := range data.Recommendations {
		fmt.Fprintf(w, "%d.\t%s\n", i+1, rec)
	}
	return w.Flush()
}

func printFields(w io.Writer, header string, fields []types.Field) {
	fmt.Fprintf(w, "%s\tVALUE\n", header)
	for _, f := range fields {
		fmt.Fprintf(w, "%s\t%s\n", f.Label, f.Value)
	}
}
