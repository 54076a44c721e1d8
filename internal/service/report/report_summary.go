package report

import (
	"fmt"
	"strconv"
	"time"

	"github.com/sustainamine/sustainamine/internal/estimation"
	"github.com/sustainamine/sustainamine/internal/model"
	"github.com/sustainamine/sustainamine/internal/reference"
	"github.com/sustainamine/sustainamine/internal/service/report/types"
)

type StandardEstimateProcessor struct {
	now func() time.Time
}

func NewStandardEstimateProcessor() *StandardEstimateProcessor {
	return &StandardEstimateProcessor{now: time.Now}
}

// ProcessEstimate formats the estimate into the rows every renderer prints.
func (p *StandardEstimateProcessor) ProcessEstimate(estimate *model.Estimate) (*types.ReportData, error) {
	if estimate == nil {
		return nil, fmt.Errorf("no estimate to report")
	}

	in := estimate.Input
	res := estimate.Result

	return &types.ReportData{
		Title:              types.ReportTitle,
		EstimateID:         estimate.ID.String(),
		Metal:              in.Metal,
		Inputs:             p.processInputs(in, estimate.State),
		Outputs:            p.processOutputs(in, res),
		Breakdown:          p.processBreakdown(res.Breakdown),
		ByProduct:          p.processByProduct(in, res),
		ByProductNarrative: reference.ByProductNarrative(in.Metal),
		ComplianceFlags:    res.ComplianceFlags,
		Recommendations:    res.Recommendations,
		Sources:            reference.Sources(),
		Disclaimer:         reference.Disclaimer,
		Timestamps:         p.generateTimestamps(),
	}, nil
}

func (p *StandardEstimateProcessor) processInputs(in estimation.Input, state string) []types.Field {
	return []types.Field{
		{Label: "Metal", Value: in.Metal.Label()},
		{Label: "State", Value: reference.DisplayState(state)},
		{Label: "Ore quality", Value: in.OreQuality.Label(in.Metal)},
		{Label: "Route", Value: in.ProductionRoute.Label()},
		{Label: "Recycled%", Value: strconv.Itoa(in.RecycledPct)},
		{Label: "Energy", Value: in.EnergySource.Label()},
		{Label: "Transport", Value: fmt.Sprintf("%s km x %s t", FormatQuantity(in.TransportKm), FormatQuantity(in.QuantityTonnes))},
		{Label: "End-of-life", Value: in.EndOfLife.Label()},
		{Label: "Storage", Value: in.StoragePractice.Label()},
	}
}

func (p *StandardEstimateProcessor) processOutputs(in estimation.Input, res estimation.Result) []types.Field {
	return []types.Field{
		{Label: "CO2 per kg", Value: formatCo2PerKg(res.Co2PerKg)},
		{Label: "CO2 per t (incl transport)", Value: formatCo2PerTonne(res.TotalCo2PerTonne)},
		{Label: "Transport CO2 (whole shipment)", Value: fmt.Sprintf("%.1f kg CO2", res.TransportCo2PerTonne)},
		{Label: "Circularity score", Value: formatCircularity(res.CircularityScore)},
		{Label: "Recycling cost", Value: fmt.Sprintf("%s USD (for %s t)", FormatCurrency(res.RecyclingCostUsd), FormatQuantity(in.QuantityTonnes))},
	}
}

func (p *StandardEstimateProcessor) processBreakdown(b estimation.Breakdown) []types.Field {
	return []types.Field{
		{Label: "Production+smelting (kg CO2e/t)", Value: fmt.Sprintf("%.1f", b.ProductionCo2PerTonne)},
		{Label: "Transport (kg CO2e/t)", Value: fmt.Sprintf("%.1f", b.TransportLegPerTonne)},
		{Label: "Total (kg CO2e/t)", Value: fmt.Sprintf("%.1f", b.TotalCo2PerTonne)},
	}
}

func (p *StandardEstimateProcessor) processByProduct(in estimation.Input, res estimation.Result) string {
	if in.Metal == estimation.MetalAluminium {
		return formatRedMud(res.RedMudTonnes, in.QuantityTonnes)
	}
	return formatSO2(res.So2Kg)
}

func (p *StandardEstimateProcessor) generateTimestamps() types.ReportTimestamps {
	now := p.now()
	return types.ReportTimestamps{
		Generated:     now.Format("2006-01-02"),
		GeneratedTime: now.Format("15:04:05"),
	}
}
