package estimation

import (
	"fmt"
	"math"
	"strings"
)

// Metal is the metal being assessed.
type Metal string

const (
	MetalAluminium Metal = "Aluminium"
	MetalCopper    Metal = "Copper"
)

// OreQuality is the grade of the mined ore. Its label depends on the metal:
// bauxite alumina content for aluminium, copper content for copper ore.
type OreQuality string

const (
	OreQualityHigh   OreQuality = "High"
	OreQualityMedium OreQuality = "Medium"
	OreQualityLow    OreQuality = "Low"
)

// ProductionRoute is the feedstock route of the metal.
type ProductionRoute string

const (
	ProductionRouteVirgin   ProductionRoute = "Virgin"
	ProductionRouteRecycled ProductionRoute = "Recycled"
	ProductionRouteMixed    ProductionRoute = "Mixed"
)

// EnergySource is the nearest description of the electricity supply.
type EnergySource string

const (
	EnergySourceCoal      EnergySource = "Coal"
	EnergySourceMixed     EnergySource = "Mixed"
	EnergySourceRenewable EnergySource = "Renewable"
)

// EndOfLife is the end-of-life option of the product.
type EndOfLife string

const (
	EndOfLifeLandfill  EndOfLife = "Landfill"
	EndOfLifeRecycling EndOfLife = "Recycling"
	EndOfLifeReuse     EndOfLife = "Reuse"
)

// StoragePractice describes how residues are stored or handled.
type StoragePractice string

const (
	StoragePracticeAuthorized    StoragePractice = "Authorized"
	StoragePracticeTemporaryOpen StoragePractice = "TemporaryOpen"
	StoragePracticeUntreated     StoragePractice = "Untreated"
)

// Severity classifies a compliance flag.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// FlagSource tells whether a flag was raised by the built-in rules or by a site policy.
type FlagSource string

const (
	FlagSourceBuiltin FlagSource = "builtin"
	FlagSourcePolicy  FlagSource = "policy"
)

var (
	Metals           = []Metal{MetalAluminium, MetalCopper}
	OreQualities     = []OreQuality{OreQualityHigh, OreQualityMedium, OreQualityLow}
	ProductionRoutes = []ProductionRoute{ProductionRouteVirgin, ProductionRouteRecycled, ProductionRouteMixed}
	EnergySources    = []EnergySource{EnergySourceCoal, EnergySourceMixed, EnergySourceRenewable}
	EndOfLifeOptions = []EndOfLife{EndOfLifeLandfill, EndOfLifeRecycling, EndOfLifeReuse}
	StoragePractices = []StoragePractice{StoragePracticeAuthorized, StoragePracticeTemporaryOpen, StoragePracticeUntreated}
)

// Input is one estimate request. All fields are required.
type Input struct {
	Metal           Metal           `json:"metal"`
	OreQuality      OreQuality      `json:"oreQuality"`
	ProductionRoute ProductionRoute `json:"productionRoute"`
	RecycledPct     int             `json:"recycledPct"`
	EnergySource    EnergySource    `json:"energySource"`
	TransportKm     float64         `json:"transportKm"`
	QuantityTonnes  float64         `json:"quantityTonnes"`
	EndOfLife       EndOfLife       `json:"endOfLife"`
	StoragePractice StoragePractice `json:"storagePractice"`
}

// ComplianceFlag is a compliance note attached to a result.
type ComplianceFlag struct {
	Topic    string     `json:"topic"`
	Message  string     `json:"message"`
	Severity Severity   `json:"severity"`
	Source   FlagSource `json:"source"`
}

// Breakdown holds the per-tonne figures and the multipliers that produced them.
type Breakdown struct {
	BaselineCo2PerKg      float64 `json:"baselineCo2PerKg"`
	QualityMultiplier     float64 `json:"qualityMultiplier"`
	EnergyMultiplier      float64 `json:"energyMultiplier"`
	ProductionCo2PerTonne float64 `json:"productionCo2PerTonne"`
	TransportLegPerTonne  float64 `json:"transportLegCo2PerTonne"`
	TotalCo2PerTonne      float64 `json:"totalCo2PerTonne"`
}

// Result is the outcome of an estimate.
//
// TransportCo2PerTonne is scaled by the assessed quantity while TotalCo2PerTonne only adds the
// unscaled transport leg. Both figures are reported as they are computed.
type Result struct {
	Co2PerKg             float64          `json:"co2PerKg"`
	TotalCo2PerTonne     float64          `json:"co2PerTonneInclTransport"`
	TransportCo2PerTonne float64          `json:"transportCo2PerTonne"`
	RedMudTonnes         float64          `json:"redMudTonnes"`
	So2Kg                float64          `json:"so2Kg"`
	CircularityScore     float64          `json:"circularityScore"`
	RecyclingCostUsd     float64          `json:"recyclingCostUsd"`
	ComplianceFlags      []ComplianceFlag `json:"complianceFlags"`
	Recommendations      []string         `json:"recommendations"`
	Breakdown            Breakdown        `json:"breakdown"`
}

func (m Metal) Valid() bool {
	return m == MetalAluminium || m == MetalCopper
}

func (m Metal) Label() string {
	return string(m)
}

func (q OreQuality) Valid() bool {
	switch q {
	case OreQualityHigh, OreQualityMedium, OreQualityLow:
		return true
	default:
		return false
	}
}

// Label returns the ore grade description shown for the given metal.
func (q OreQuality) Label(m Metal) string {
	if m == MetalCopper {
		switch q {
		case OreQualityHigh:
			return "High (>2% Cu)"
		case OreQualityMedium:
			return "Medium (1–2% Cu)"
		case OreQualityLow:
			return "Low (<1% Cu)"
		}
		return string(q)
	}
	switch q {
	case OreQualityHigh:
		return "High (>45%)"
	case OreQualityMedium:
		return "Medium (35–45%)"
	case OreQualityLow:
		return "Low (<35%)"
	}
	return string(q)
}

func (r ProductionRoute) Valid() bool {
	switch r {
	case ProductionRouteVirgin, ProductionRouteRecycled, ProductionRouteMixed:
		return true
	default:
		return false
	}
}

func (r ProductionRoute) Label() string {
	if r == ProductionRouteVirgin {
		return "Virgin/Raw"
	}
	return string(r)
}

func (e EnergySource) Valid() bool {
	switch e {
	case EnergySourceCoal, EnergySourceMixed, EnergySourceRenewable:
		return true
	default:
		return false
	}
}

func (e EnergySource) Label() string {
	switch e {
	case EnergySourceCoal:
		return "Coal-based grid"
	case EnergySourceMixed:
		return "Mixed grid"
	case EnergySourceRenewable:
		return "Renewable-heavy"
	default:
		return string(e)
	}
}

func (e EndOfLife) Valid() bool {
	switch e {
	case EndOfLifeLandfill, EndOfLifeRecycling, EndOfLifeReuse:
		return true
	default:
		return false
	}
}

func (e EndOfLife) Label() string {
	return string(e)
}

func (s StoragePractice) Valid() bool {
	switch s {
	case StoragePracticeAuthorized, StoragePracticeTemporaryOpen, StoragePracticeUntreated:
		return true
	default:
		return false
	}
}

func (s StoragePractice) Label() string {
	switch s {
	case StoragePracticeAuthorized:
		return "Proper authorized storage"
	case StoragePracticeTemporaryOpen:
		return "Temporary open storage"
	case StoragePracticeUntreated:
		return "Untreated disposal"
	default:
		return string(s)
	}
}

// ParseMetal accepts the canonical value in any case.
func ParseMetal(s string) (Metal, error) {
	for _, m := range Metals {
		if matches(s, string(m), m.Label()) {
			return m, nil
		}
	}
	return "", NewValidationError("metal", "unknown metal %q", s)
}

// ParseOreQuality accepts the canonical value or any of the metal specific labels.
func ParseOreQuality(s string) (OreQuality, error) {
	for _, q := range OreQualities {
		if matches(s, string(q), q.Label(MetalAluminium), q.Label(MetalCopper)) {
			return q, nil
		}
	}
	return "", NewValidationError("oreQuality", "unknown ore quality %q", s)
}

func ParseProductionRoute(s string) (ProductionRoute, error) {
	for _, r := range ProductionRoutes {
		if matches(s, string(r), r.Label()) {
			return r, nil
		}
	}
	return "", NewValidationError("productionRoute", "unknown production route %q", s)
}

func ParseEnergySource(s string) (EnergySource, error) {
	for _, e := range EnergySources {
		if matches(s, string(e), e.Label()) {
			return e, nil
		}
	}
	return "", NewValidationError("energySource", "unknown energy source %q", s)
}

func ParseEndOfLife(s string) (EndOfLife, error) {
	for _, e := range EndOfLifeOptions {
		if matches(s, string(e), e.Label()) {
			return e, nil
		}
	}
	return "", NewValidationError("endOfLife", "unknown end-of-life option %q", s)
}

func ParseStoragePractice(s string) (StoragePractice, error) {
	for _, p := range StoragePractices {
		if matches(s, string(p), p.Label()) {
			return p, nil
		}
	}
	return "", NewValidationError("storagePractice", "unknown storage practice %q", s)
}

func matches(s string, candidates ...string) bool {
	s = strings.TrimSpace(s)
	for _, c := range candidates {
		if strings.EqualFold(s, c) {
			return true
		}
	}
	return false
}

// Validate checks every field of the input against its allowed values and ranges.
func (in Input) Validate() error {
	switch {
	case !in.Metal.Valid():
		return NewValidationError("metal", "unknown metal %q", in.Metal)
	case !in.OreQuality.Valid():
		return NewValidationError("oreQuality", "unknown ore quality %q", in.OreQuality)
	case !in.ProductionRoute.Valid():
		return NewValidationError("productionRoute", "unknown production route %q", in.ProductionRoute)
	case in.RecycledPct < 0 || in.RecycledPct > 100:
		return NewValidationError("recycledPct", "must be between 0 and 100, got %d", in.RecycledPct)
	case !in.EnergySource.Valid():
		return NewValidationError("energySource", "unknown energy source %q", in.EnergySource)
	case in.TransportKm < 0 || !finite(in.TransportKm):
		return NewValidationError("transportKm", "must be non-negative, got %s", fmt.Sprint(in.TransportKm))
	case in.QuantityTonnes < 1 || !finite(in.QuantityTonnes):
		return NewValidationError("quantityTonnes", "must be at least 1, got %s", fmt.Sprint(in.QuantityTonnes))
	case !in.EndOfLife.Valid():
		return NewValidationError("endOfLife", "unknown end-of-life option %q", in.EndOfLife)
	case !in.StoragePractice.Valid():
		return NewValidationError("storagePractice", "unknown storage practice %q", in.StoragePractice)
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
