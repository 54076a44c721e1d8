package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/sustainamine/sustainamine/internal/service"
)

type ReportOptions struct {
	GlobalOptions
	InputOptions

	Format  string
	OutFile string
}

func DefaultReportOptions() *ReportOptions {
	return &ReportOptions{
		GlobalOptions: DefaultGlobalOptions(),
		InputOptions:  DefaultInputOptions(),
		Format:        string(service.DefaultReportFormat),
	}
}

func NewCmdReport() *cobra.Command {
	o := DefaultReportOptions()
	cmd := &cobra.Command{
		Use:   "report [flags]",
		Short: "Compute an estimate and export the summary report.",
		Example: "  sustainamine report --metal Copper --state Rajasthan\n" +
			"  sustainamine report --format xlsx --out summary.xlsx",
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

func (o *ReportOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	o.InputOptions.Bind(fs)

	formats := make([]string, 0, len(service.ReportFormats))
	for _, f := range service.ReportFormats {
		formats = append(formats, string(f))
	}
	fs.StringVarP(&o.Format, "format", "f", o.Format, fmt.Sprintf("Report format. One of: (%s).", strings.Join(formats, ", ")))
	fs.StringVar(&o.OutFile, "out", o.OutFile, "Output file. Defaults to SustainaMine_LCA_Summary.<format> in the current directory")
}

func (o *ReportOptions) Complete(cmd *cobra.Command, args []string) error {
	if err := o.GlobalOptions.Complete(cmd, args); err != nil {
		return err
	}
	format, err := service.ParseReportFormat(o.Format)
	if err != nil {
		return err
	}
	o.Format = string(format)
	if o.OutFile == "" {
		o.OutFile = format.Filename()
	}
	return nil
}

func (o *ReportOptions) Validate(args []string) error {
	return o.GlobalOptions.Validate(args)
}

func (o *ReportOptions) Run(ctx context.Context, args []string) error {
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

	report, err := service.NewReportService().Generate(ctx, estimate, service.ReportFormat(o.Format))
	if err != nil {
		return err
	}

	if err := os.WriteFile(o.OutFile, report.Content, 0o600); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	fmt.Fprintf(o.out, "%s report written to %s\n", strings.ToUpper(string(report.Format)), o.OutFile)
	return nil
}
