package csv

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/sustainamine/sustainamine/internal/service/report/types"
)

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) SupportedFormat() types.ReportFormat {
	return types.ReportFormatCSV
}

func (r *Renderer) ContentType() string {
	return "text/csv; charset=utf-8"
}

func (r *Renderer) Render(data *types.ReportData) ([]byte, error) {
	var csvRows [][]string

	csvRows = append(csvRows, []string{data.Title})
	csvRows = append(csvRows, []string{fmt.Sprintf("Generated: %s at %s",
		data.Timestamps.Generated, data.Timestamps.GeneratedTime)})
	csvRows = append(csvRows, []string{"Estimate ID", data.EstimateID})
	csvRows = append(csvRows, []string{""})

	csvRows = r.addFields(csvRows, "INPUTS", "Input", data.Inputs)
	csvRows = r.addFields(csvRows, "ESTIMATED OUTPUTS (ILLUSTRATIVE)", "Output", data.Outputs)
	csvRows = r.addFields(csvRows, "BREAKDOWN (PER TONNE BASIS)", "Stage", data.Breakdown)
	csvRows = r.addByProduct(csvRows, data)
	csvRows = r.addComplianceFlags(csvRows, data)
	csvRows = r.addRecommendations(csvRows, data.Recommendations)
	csvRows = r.addSources(csvRows, data)

	return r.convertRowsToCSV(csvRows)
}

func (r *Renderer) addFields(csvRows [][]string, title, header string, fields []types.Field) [][]string {
	csvRows = append(csvRows, []string{title})
	csvRows = append(csvRows, []string{header, "Value"})
	for _, f := range fields {
		csvRows = append(csvRows, []string{f.Label, f.Value})
	}
	csvRows = append(csvRows, []string{""})

	return csvRows
}

func (r *Renderer) addByProduct(csvRows [][]string, data *types.ReportData) [][]string {
	csvRows = append(csvRows, []string{"BY-PRODUCT / TOXIC EMISSIONS"})
	csvRows = append(csvRows, []string{data.ByProduct})
	csvRows = append(csvRows, []string{data.ByProductNarrative})
	csvRows = append(csvRows, []string{""})

	return csvRows
}

func (r *Renderer) addComplianceFlags(csvRows [][]string, data *types.ReportData) [][]string {
	csvRows = append(csvRows, []string{"COMPLIANCE FLAGS"})
	csvRows = append(csvRows, []string{"Topic", "Message", "Severity", "Source"})

	if len(data.ComplianceFlags) == 0 {
		csvRows = append(csvRows, []string{"None", "No compliance flags raised"})
	}
	for _, f := range data.ComplianceFlags {
		csvRows = append(csvRows, []string{f.Topic, f.Message, string(f.Severity), string(f.Source)})
	}
	csvRows = append(csvRows, []string{""})

	return csvRows
}

func (r *Renderer) addRecommendations(csvRows [][]string, recs []string) [][]string {
	csvRows = append(csvRows, []string{"RECOMMENDATIONS"})
	for i, rec := range recs {
		csvRows = append(csvRows, []string{fmt.Sprintf("%d", i+1), rec})
	}
	csvRows = append(csvRows, []string{""})

	return csvRows
}

func (r *Renderer) addSources(csvRows [][]string, data *types.ReportData) [][]string {
	csvRows = append(csvRows, []string{"DATA SOURCES & REFERENCES"})
	csvRows = append(csvRows, []string{"Key", "Title", "URL"})
	for _, s := range data.Sources {
		csvRows = append(csvRows, []string{s.Key, s.Title, s.URL})
	}
	csvRows = append(csvRows, []string{""})
	csvRows = append(csvRows, []string{data.Disclaimer})

	return csvRows
}

func (r *Renderer) convertRowsToCSV(csvRows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	for _, row := range csvRows {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV writer: %w", err)
	}

	return buf.Bytes(), nil
}
