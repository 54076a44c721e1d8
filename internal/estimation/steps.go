package estimation

// Step computes one part of an estimate. Steps run in registration order and
// may read what earlier steps wrote into the result.
type Step interface {
	// Name identifies the step. It must be unique within a Calculator.
	Name() string
	// Apply writes the step's figures into r.
	Apply(in Input, f Factors, r *Result)
}

// DefaultSteps returns the estimate pipeline in evaluation order.
func DefaultSteps() []Step {
	return []Step{
		productionStep{},
		byProductStep{},
		transportStep{},
		circularityStep{},
		recyclingCostStep{},
		complianceStep{},
		recommendationStep{},
	}
}

// productionStep applies the route baseline and the energy mix.
type productionStep struct{}

func (productionStep) Name() string { return "production" }

func (productionStep) Apply(in Input, f Factors, r *Result) {
	baseline := baselineCo2PerKg(in, f)
	energy := EnergyMultiplier(in.EnergySource)

	r.Co2PerKg = baseline * energy
	r.Breakdown.BaselineCo2PerKg = baseline
	r.Breakdown.EnergyMultiplier = energy
	r.Breakdown.ProductionCo2PerTonne = r.Co2PerKg * kgPerTonne
}

func baselineCo2PerKg(in Input, f Factors) float64 {
	virgin := f.VirginCo2PerKg(in.Metal)
	recycled := f.RecycledCo2PerKg(in.Metal)

	switch in.ProductionRoute {
	case ProductionRouteRecycled:
		return recycled
	case ProductionRouteMixed:
		pct := float64(in.RecycledPct)
		return virgin*(100-pct)/100 + recycled*pct/100
	default:
		return virgin
	}
}

// byProductStep estimates red mud for aluminium and SO2 for copper.
type byProductStep struct{}

func (byProductStep) Name() string { return "by-product" }

func (byProductStep) Apply(in Input, f Factors, r *Result) {
	quality := QualityMultiplier(in.Metal, in.OreQuality)
	r.Breakdown.QualityMultiplier = quality

	switch in.Metal {
	case MetalAluminium:
		r.RedMudTonnes = f.RedMudPerTonne * in.QuantityTonnes * quality
	case MetalCopper:
		r.So2Kg = f.So2KgPerTonne * in.QuantityTonnes * quality
	}
}

// transportStep adds the transport leg. The per-tonne total carries the
// unscaled leg while TransportCo2PerTonne covers the whole shipment.
type transportStep struct{}

func (transportStep) Name() string { return "transport" }

func (transportStep) Apply(in Input, f Factors, r *Result) {
	leg := f.TransportPerTonneKm * in.TransportKm

	r.TransportCo2PerTonne = leg * in.QuantityTonnes
	r.TotalCo2PerTonne = r.Co2PerKg*kgPerTonne + leg
	r.Breakdown.TransportLegPerTonne = leg
	r.Breakdown.TotalCo2PerTonne = r.TotalCo2PerTonne
}

type circularityStep struct{}

func (circularityStep) Name() string { return "circularity" }

func (circularityStep) Apply(in Input, _ Factors, r *Result) {
	r.CircularityScore = CircularityScore(in.RecycledPct, in.EndOfLife)
}

type recyclingCostStep struct{}

func (recyclingCostStep) Name() string { return "recycling cost" }

func (recyclingCostStep) Apply(in Input, f Factors, r *Result) {
	r.RecyclingCostUsd = f.RecycleCostPerTonne(in.Metal) * in.QuantityTonnes
}

// complianceStep needs the by-product and circularity figures.
type complianceStep struct{}

func (complianceStep) Name() string { return "compliance" }

func (complianceStep) Apply(in Input, _ Factors, r *Result) {
	r.ComplianceFlags = complianceFlags(in, *r)
}

type recommendationStep struct{}

func (recommendationStep) Name() string { return "recommendations" }

func (recommendationStep) Apply(in Input, _ Factors, r *Result) {
	r.Recommendations = recommendations(in.Metal)
}
