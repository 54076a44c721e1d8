package estimation

import (
	"os"

	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"
)

// Factors are the reference coefficients used by a Calculator.
// The defaults are illustrative and meant to be replaced with validated inventory data.
type Factors struct {
	AluminiumVirgin         float64 `json:"aluminium_virgin_kgco2_per_kg"`
	AluminiumRecycled       float64 `json:"aluminium_recycled_kgco2_per_kg"`
	CopperVirgin            float64 `json:"copper_virgin_kgco2_per_kg"`
	CopperRecycled          float64 `json:"copper_recycled_kgco2_per_kg"`
	RedMudPerTonne          float64 `json:"red_mud_t_per_t_aluminium"`
	So2KgPerTonne           float64 `json:"so2_kg_per_t_copper"`
	TransportPerTonneKm     float64 `json:"transport_kgco2_per_tkm"`
	RecycleCostAluminiumUsd float64 `json:"recycle_cost_usd_per_t_aluminium"`
	RecycleCostCopperUsd    float64 `json:"recycle_cost_usd_per_t_copper"`
}

// DefaultFactors returns the built-in illustrative factors.
func DefaultFactors() Factors {
	return Factors{
		AluminiumVirgin:         16.0,
		AluminiumRecycled:       4.0,
		CopperVirgin:            8.0,
		CopperRecycled:          2.0,
		RedMudPerTonne:          1.5,
		So2KgPerTonne:           25.0,
		TransportPerTonneKm:     0.05,
		RecycleCostAluminiumUsd: 200.0,
		RecycleCostCopperUsd:    300.0,
	}
}

// VirginCo2PerKg returns the virgin production factor of the metal in kg CO2e per kg.
func (f Factors) VirginCo2PerKg(m Metal) float64 {
	if m == MetalAluminium {
		return f.AluminiumVirgin
	}
	return f.CopperVirgin
}

// RecycledCo2PerKg returns the secondary production factor of the metal in kg CO2e per kg.
func (f Factors) RecycledCo2PerKg(m Metal) float64 {
	if m == MetalAluminium {
		return f.AluminiumRecycled
	}
	return f.CopperRecycled
}

// RecycleCostPerTonne returns the recycling cost of the metal in USD per tonne.
func (f Factors) RecycleCostPerTonne(m Metal) float64 {
	if m == MetalAluminium {
		return f.RecycleCostAluminiumUsd
	}
	return f.RecycleCostCopperUsd
}

// Validate rejects negative factors.
func (f Factors) Validate() error {
	values := []struct {
		key   string
		value float64
	}{
		{"aluminium_virgin_kgco2_per_kg", f.AluminiumVirgin},
		{"aluminium_recycled_kgco2_per_kg", f.AluminiumRecycled},
		{"copper_virgin_kgco2_per_kg", f.CopperVirgin},
		{"copper_recycled_kgco2_per_kg", f.CopperRecycled},
		{"red_mud_t_per_t_aluminium", f.RedMudPerTonne},
		{"so2_kg_per_t_copper", f.So2KgPerTonne},
		{"transport_kgco2_per_tkm", f.TransportPerTonneKm},
		{"recycle_cost_usd_per_t_aluminium", f.RecycleCostAluminiumUsd},
		{"recycle_cost_usd_per_t_copper", f.RecycleCostCopperUsd},
	}
	for _, v := range values {
		if v.value < 0 || !finite(v.value) {
			return NewValidationError(v.key, "factor must be a non-negative number, got %v", v.value)
		}
	}
	return nil
}

// ParseFactors reads factor overrides from YAML or JSON. Keys left out keep their default value.
func ParseFactors(data []byte) (Factors, error) {
	factors := DefaultFactors()
	if err := yaml.UnmarshalStrict(data, &factors); err != nil {
		return Factors{}, errors.Wrap(err, "decoding factors")
	}
	if err := factors.Validate(); err != nil {
		return Factors{}, err
	}
	return factors, nil
}

// LoadFactors returns the defaults when path is empty, otherwise the overrides read from path.
func LoadFactors(path string) (Factors, error) {
	if path == "" {
		return DefaultFactors(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Factors{}, errors.Wrapf(err, "reading factors file %s", path)
	}

	factors, err := ParseFactors(data)
	if err != nil {
		return Factors{}, errors.Wrapf(err, "loading factors file %s", path)
	}
	return factors, nil
}
