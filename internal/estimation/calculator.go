package estimation

import (
	"fmt"
	"math"
)

const (
	// MaxCircularityScore caps the circularity score.
	MaxCircularityScore = 100.0
	// LowCircularityThreshold is the score below which a low circularity warning is raised.
	LowCircularityThreshold = 40.0

	recycledContentWeight = 0.5
	recyclingBonus        = 30.0
	reuseBonus            = 40.0
	kgPerTonne            = 1000.0
)

const (
	RecommendRecycledFeedstock   = "Increase recycled feedstock where feasible — reduces primary extraction & supports National Mineral Policy objectives."
	RecommendRedMudValorization  = "Invest in red mud neutralization & valorization (cement substitution/pigments/REE recovery) — follow CPCB technical guidelines."
	RecommendSO2Capture          = "Install SO₂ capture + contact process to convert to sulfuric acid and supply local fertilizer/chemical plants."
	RecommendRegulatorEngagement = "Engage with local SPCB/CPCB for authorization and safe handling steps (the tool generates a compliance checklist)."
)

const (
	TopicStorage     = "Storage practice"
	TopicRedMud      = "Red mud handling"
	TopicAirEmission = "Air emissions"
	TopicCircularity = "Circularity"
)

// Calculator computes estimates from a fixed set of factors by running its steps in order.
type Calculator struct {
	factors Factors
	steps   []Step
}

// CalculatorOption is a functional option for configuring a Calculator.
type CalculatorOption func(*Calculator)

// WithFactors replaces the default factors.
func WithFactors(factors Factors) CalculatorOption {
	return func(c *Calculator) {
		c.factors = factors
	}
}

// WithStep appends a step after the default ones.
func WithStep(s Step) CalculatorOption {
	return func(c *Calculator) {
		c.register(s)
	}
}

// NewCalculator creates a Calculator using DefaultFactors and DefaultSteps unless overridden by options.
func NewCalculator(opts ...CalculatorOption) *Calculator {
	c := Calculator{
		factors: DefaultFactors(),
	}
	for _, s := range DefaultSteps() {
		c.register(s)
	}

	for _, opt := range opts {
		opt(&c)
	}

	return &c
}

// register panics on a duplicate step name.
func (c *Calculator) register(s Step) {
	for _, existing := range c.steps {
		if existing.Name() == s.Name() {
			panic(fmt.Sprintf("estimation: step %q already registered", s.Name()))
		}
	}
	c.steps = append(c.steps, s)
}

// Factors returns a copy of the factors in use.
func (c *Calculator) Factors() Factors {
	return c.factors
}

// Steps returns the step names in evaluation order.
func (c *Calculator) Steps() []string {
	names := make([]string, 0, len(c.steps))
	for _, s := range c.steps {
		names = append(names, s.Name())
	}
	return names
}

// Estimate validates the input and computes the estimate.
func (c *Calculator) Estimate(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	var result Result
	for _, s := range c.steps {
		s.Apply(in, c.factors, &result)
	}

	return result, nil
}

// QualityMultiplier scales by-product generation by ore grade. Copper ore
// penalises lower grades more than bauxite.
func QualityMultiplier(m Metal, q OreQuality) float64 {
	if m == MetalCopper {
		switch q {
		case OreQualityMedium:
			return 1.3
		case OreQualityLow:
			return 1.6
		default:
			return 1.0
		}
	}
	switch q {
	case OreQualityMedium:
		return 1.2
	case OreQualityLow:
		return 1.5
	default:
		return 1.0
	}
}

// EnergyMultiplier adjusts the production factor for the electricity supply.
func EnergyMultiplier(e EnergySource) float64 {
	switch e {
	case EnergySourceCoal:
		return 1.2
	case EnergySourceRenewable:
		return 0.8
	default:
		return 1.0
	}
}

// CircularityScore weights recycled content by half and adds an end-of-life bonus, capped at 100.
func CircularityScore(recycledPct int, eol EndOfLife) float64 {
	score := float64(recycledPct) * recycledContentWeight
	switch eol {
	case EndOfLifeRecycling:
		score += recyclingBonus
	case EndOfLifeReuse:
		score += reuseBonus
	}
	return math.Max(0, math.Min(MaxCircularityScore, score))
}

func complianceFlags(in Input, r Result) []ComplianceFlag {
	flags := []ComplianceFlag{}
	if in.StoragePractice != StoragePracticeAuthorized {
		flags = append(flags, ComplianceFlag{
			Topic:    TopicStorage,
			Message:  "Not authorized/temporary storage — requires review under Hazardous & Other Wastes Rules (2016)",
			Severity: SeverityWarning,
			Source:   FlagSourceBuiltin,
		})
	}
	if in.Metal == MetalAluminium && r.RedMudTonnes > 0 {
		flags = append(flags, ComplianceFlag{
			Topic:    TopicRedMud,
			Message:  "Red mud generation flagged — follow CPCB Guidelines for Handling & Management of Red Mud",
			Severity: SeverityInfo,
			Source:   FlagSourceBuiltin,
		})
	}
	if in.Metal == MetalCopper && r.So2Kg > 0 {
		flags = append(flags, ComplianceFlag{
			Topic:    TopicAirEmission,
			Message:  "SO₂ emissions estimated — recommend gas capture & conversion to sulfuric acid",
			Severity: SeverityInfo,
			Source:   FlagSourceBuiltin,
		})
	}
	if r.CircularityScore < LowCircularityThreshold {
		flags = append(flags, ComplianceFlag{
			Topic:    TopicCircularity,
			Message:  "Low circularity score — consider increasing recycled input or infrastructure",
			Severity: SeverityWarning,
			Source:   FlagSourceBuiltin,
		})
	}
	return flags
}

func recommendations(m Metal) []string {
	recs := []string{RecommendRecycledFeedstock, RecommendRedMudValorization}
	if m == MetalCopper {
		recs = append(recs, RecommendSO2Capture)
	}
	return append(recs, RecommendRegulatorEngagement)
}
