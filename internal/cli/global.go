package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/sustainamine/sustainamine/internal/estimation"
	"github.com/sustainamine/sustainamine/internal/opa"
	"github.com/sustainamine/sustainamine/internal/service"
)

type GlobalOptions struct {
	FactorsFile string
	PoliciesDir string

	out io.Writer
}

func DefaultGlobalOptions() GlobalOptions {
	return GlobalOptions{
		out: os.Stdout,
	}
}

func (o *GlobalOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&o.FactorsFile, "factors-file", o.FactorsFile, "YAML or JSON file overriding the default emission factors")
	fs.StringVar(&o.PoliciesDir, "policies-dir", o.PoliciesDir, "Directory of rego files with site compliance policies")
}

func (o *GlobalOptions) Complete(cmd *cobra.Command, args []string) error {
	o.out = cmd.OutOrStdout()
	return nil
}

func (o *GlobalOptions) Validate(args []string) error {
	if o.FactorsFile != "" {
		if _, err := os.Stat(o.FactorsFile); err != nil {
			return fmt.Errorf("factors file: %w", err)
		}
	}
	return nil
}

// Factors returns the defaults unless a factors file was given.
func (o *GlobalOptions) Factors() (estimation.Factors, error) {
	return estimation.LoadFactors(o.FactorsFile)
}

func (o *GlobalOptions) EstimationService() (*service.EstimationService, error) {
	factors, err := o.Factors()
	if err != nil {
		return nil, err
	}

	var policies service.PolicyEvaluator
	if o.PoliciesDir != "" {
		validator, err := opa.NewValidatorFromDir(o.PoliciesDir)
		if err != nil {
			return nil, fmt.Errorf("loading policies: %w", err)
		}
		policies = validator
	}

	return service.NewEstimationService(estimation.NewCalculator(estimation.WithFactors(factors)), policies), nil
}
