package mappers

import (
	"github.com/sustainamine/sustainamine/api/v1alpha1"
	"github.com/sustainamine/sustainamine/internal/estimation"
	"github.com/sustainamine/sustainamine/internal/model"
	"github.com/sustainamine/sustainamine/internal/reference"
)

func EstimateToApi(e *model.Estimate) v1alpha1.Estimate {
	in := e.Input
	res := e.Result

	flags := make([]v1alpha1.ComplianceFlag, 0, len(res.ComplianceFlags))
	for _, f := range res.ComplianceFlags {
		flags = append(flags, v1alpha1.ComplianceFlag{
			Topic:    f.Topic,
			Message:  f.Message,
			Severity: string(f.Severity),
			Source:   string(f.Source),
		})
	}

	recs := make([]string, len(res.Recommendations))
	copy(recs, res.Recommendations)

	return v1alpha1.Estimate{
		Id:        e.ID,
		CreatedAt: e.CreatedAt,
		Input: v1alpha1.EstimateInput{
			Metal:           string(in.Metal),
			OreQuality:      string(in.OreQuality),
			ProductionRoute: string(in.ProductionRoute),
			RecycledPct:     in.RecycledPct,
			EnergySource:    string(in.EnergySource),
			TransportKm:     in.TransportKm,
			QuantityTonnes:  in.QuantityTonnes,
			EndOfLife:       string(in.EndOfLife),
			StoragePractice: string(in.StoragePractice),
			State:           e.State,
		},
		Result: v1alpha1.EstimateResult{
			Co2PerKg:                 res.Co2PerKg,
			Co2PerTonneInclTransport: res.TotalCo2PerTonne,
			TransportCo2PerTonne:     res.TransportCo2PerTonne,
			RedMudTonnes:             res.RedMudTonnes,
			So2Kg:                    res.So2Kg,
			CircularityScore:         res.CircularityScore,
			RecyclingCostUsd:         res.RecyclingCostUsd,
			ComplianceFlags:          flags,
			Recommendations:          recs,
			Breakdown: v1alpha1.Breakdown{
				BaselineCo2PerKg:        res.Breakdown.BaselineCo2PerKg,
				QualityMultiplier:       res.Breakdown.QualityMultiplier,
				EnergyMultiplier:        res.Breakdown.EnergyMultiplier,
				ProductionCo2PerTonne:   res.Breakdown.ProductionCo2PerTonne,
				TransportLegCo2PerTonne: res.Breakdown.TransportLegPerTonne,
				TotalCo2PerTonne:        res.Breakdown.TotalCo2PerTonne,
			},
		},
	}
}

// FactorsToApi keys the factors by the names used in factor files.
func FactorsToApi(f estimation.Factors) v1alpha1.Factors {
	return v1alpha1.Factors{
		"aluminium_virgin_kgco2_per_kg":    f.AluminiumVirgin,
		"aluminium_recycled_kgco2_per_kg":  f.AluminiumRecycled,
		"copper_virgin_kgco2_per_kg":       f.CopperVirgin,
		"copper_recycled_kgco2_per_kg":     f.CopperRecycled,
		"red_mud_t_per_t_aluminium":        f.RedMudPerTonne,
		"so2_kg_per_t_copper":              f.So2KgPerTonne,
		"transport_kgco2_per_tkm":          f.TransportPerTonneKm,
		"recycle_cost_usd_per_t_aluminium": f.RecycleCostAluminiumUsd,
		"recycle_cost_usd_per_t_copper":    f.RecycleCostCopperUsd,
	}
}

func ReferencesToApi() v1alpha1.References {
	sources := reference.Sources()
	apiSources := make([]v1alpha1.Source, 0, len(sources))
	for _, s := range sources {
		apiSources = append(apiSources, v1alpha1.Source{Key: s.Key, Title: s.Title, URL: s.URL})
	}

	states := make(map[string][]string, len(estimation.Metals))
	for _, m := range estimation.Metals {
		states[string(m)] = reference.ProducingStates(m)
	}

	return v1alpha1.References{
		Sources:         apiSources,
		ProducingStates: states,
		Disclaimer:      reference.Disclaimer,
	}
}
