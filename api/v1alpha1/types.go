package v1alpha1

import (
	"time"

	"github.com/google/uuid"
)

// Error defines model for Error.
type Error struct {
	Message   string  `json:"message"`
	RequestId *string `json:"requestId,omitempty"`
}

// Health defines model for the /health endpoint.
type Health struct {
	Status string `json:"status"`
}

// Info defines model for Info.
type Info struct {
	GitVersion string `json:"gitVersion"`
	GitCommit  string `json:"gitCommit"`
	BuildDate  string `json:"buildDate"`
}

// EstimateRequest defines model for EstimateRequest.
// Enumerated fields accept the canonical value or its display label.
type EstimateRequest struct {
	Metal           string   `json:"metal" validate:"required,metal"`
	OreQuality      string   `json:"oreQuality" validate:"required,ore_quality"`
	ProductionRoute string   `json:"productionRoute" validate:"required,production_route"`
	RecycledPct     *int     `json:"recycledPct" validate:"required,min=0,max=100"`
	EnergySource    string   `json:"energySource" validate:"required,energy_source"`
	TransportKm     *float64 `json:"transportKm" validate:"required,min=0,max=5000"`
	QuantityTonnes  float64  `json:"quantityTonnes" validate:"min=1,max=100000"`
	EndOfLife       string   `json:"endOfLife" validate:"required,end_of_life"`
	StoragePractice string   `json:"storagePractice" validate:"required,storage_practice"`
	State           *string  `json:"state,omitempty" validate:"omitnil,producing_state=Metal"`
}

// EstimateInput defines model for EstimateInput.
type EstimateInput struct {
	Metal           string  `json:"metal"`
	OreQuality      string  `json:"oreQuality"`
	ProductionRoute string  `json:"productionRoute"`
	RecycledPct     int     `json:"recycledPct"`
	EnergySource    string  `json:"energySource"`
	TransportKm     float64 `json:"transportKm"`
	QuantityTonnes  float64 `json:"quantityTonnes"`
	EndOfLife       string  `json:"endOfLife"`
	StoragePractice string  `json:"storagePractice"`
	State           string  `json:"state,omitempty"`
}

// ComplianceFlag defines model for ComplianceFlag.
type ComplianceFlag struct {
	Topic    string `json:"topic"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
	Source   string `json:"source"`
}

// Breakdown defines model for Breakdown.
type Breakdown struct {
	BaselineCo2PerKg        float64 `json:"baselineCo2PerKg"`
	QualityMultiplier       float64 `json:"qualityMultiplier"`
	EnergyMultiplier        float64 `json:"energyMultiplier"`
	ProductionCo2PerTonne   float64 `json:"productionCo2PerTonne"`
	TransportLegCo2PerTonne float64 `json:"transportLegCo2PerTonne"`
	TotalCo2PerTonne        float64 `json:"totalCo2PerTonne"`
}

// EstimateResult defines model for EstimateResult.
type EstimateResult struct {
	Co2PerKg                 float64          `json:"co2PerKg"`
	Co2PerTonneInclTransport float64          `json:"co2PerTonneInclTransport"`
	TransportCo2PerTonne     float64          `json:"transportCo2PerTonne"`
	RedMudTonnes             float64          `json:"redMudTonnes"`
	So2Kg                    float64          `json:"so2Kg"`
	CircularityScore         float64          `json:"circularityScore"`
	RecyclingCostUsd         float64          `json:"recyclingCostUsd"`
	ComplianceFlags          []ComplianceFlag `json:"complianceFlags"`
	Recommendations          []string         `json:"recommendations"`
	Breakdown                Breakdown        `json:"breakdown"`
}

// Estimate defines model for Estimate.
type Estimate struct {
	Id        uuid.UUID      `json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	Input     EstimateInput  `json:"input"`
	Result    EstimateResult `json:"result"`
}

// Factors defines model for Factors, keyed by factor name.
type Factors map[string]float64

// Source defines model for Source.
type Source struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// References defines model for References.
type References struct {
	Sources         []Source            `json:"sources"`
	ProducingStates map[string][]string `json:"producingStates"`
	Disclaimer      string              `json:"disclaimer"`
}

// ReportFormat defines the format query parameter of createReport.
type ReportFormat string

const (
	ReportFormatPdf  ReportFormat = "pdf"
	ReportFormatHtml ReportFormat = "html"
	ReportFormatCsv  ReportFormat = "csv"
	ReportFormatXlsx ReportFormat = "xlsx"
)
