package cli

import (
	"github.com/spf13/pflag"
	"github.com/sustainamine/sustainamine/api/v1alpha1"
	"github.com/sustainamine/sustainamine/internal/handlers/v1alpha1/mappers"
	"github.com/sustainamine/sustainamine/internal/handlers/validator"
	"github.com/sustainamine/sustainamine/internal/service"
)

// InputOptions are the estimate form fields. The defaults match the web form.
type InputOptions struct {
	Metal           string
	OreQuality      string
	ProductionRoute string
	RecycledPct     int
	EnergySource    string
	TransportKm     float64
	QuantityTonnes  float64
	EndOfLife       string
	StoragePractice string
	State           string
}

func DefaultInputOptions() InputOptions {
	return InputOptions{
		Metal:           "Aluminium",
		OreQuality:      "High",
		ProductionRoute: "Virgin",
		RecycledPct:     30,
		EnergySource:    "Coal",
		TransportKm:     200,
		QuantityTonnes:  1,
		EndOfLife:       "Landfill",
		StoragePractice: "Authorized",
	}
}

func (o *InputOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.Metal, "metal", "m", o.Metal, "Metal to assess: Aluminium or Copper")
	fs.StringVar(&o.OreQuality, "ore-quality", o.OreQuality, "Ore quality: High, Medium or Low")
	fs.StringVar(&o.ProductionRoute, "route", o.ProductionRoute, "Production route: Virgin, Recycled or Mixed")
	fs.IntVar(&o.RecycledPct, "recycled-pct", o.RecycledPct, "Recycled content in percent (0-100)")
	fs.StringVar(&o.EnergySource, "energy", o.EnergySource, "Energy source: Coal, Mixed or Renewable")
	fs.Float64Var(&o.TransportKm, "transport-km", o.TransportKm, "Transport distance in km (0-5000)")
	fs.Float64VarP(&o.QuantityTonnes, "quantity", "q", o.QuantityTonnes, "Quantity to assess in tonnes of metal (1-100000)")
	fs.StringVar(&o.EndOfLife, "end-of-life", o.EndOfLife, "End-of-life option: Landfill, Recycling or Reuse")
	fs.StringVar(&o.StoragePractice, "storage", o.StoragePractice, "Storage practice: Authorized, TemporaryOpen or Untreated")
	fs.StringVar(&o.State, "state", o.State, "State of extraction")
}

// Request checks the fields with the API request rules and resolves their labels.
func (o *InputOptions) Request() (service.EstimateRequest, error) {
	body := v1alpha1.EstimateRequest{
		Metal:           o.Metal,
		OreQuality:      o.OreQuality,
		ProductionRoute: o.ProductionRoute,
		RecycledPct:     &o.RecycledPct,
		EnergySource:    o.EnergySource,
		TransportKm:     &o.TransportKm,
		QuantityTonnes:  o.QuantityTonnes,
		EndOfLife:       o.EndOfLife,
		StoragePractice: o.StoragePractice,
	}
	if o.State != "" {
		body.State = &o.State
	}

	v := validator.NewValidator()
	v.Register(validator.NewEstimateValidationRules()...)
	if err := v.Struct(body); err != nil {
		return service.EstimateRequest{}, err
	}

	return mappers.EstimateRequestFromApi(body)
}
