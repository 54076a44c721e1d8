package xlsx

import (
	"fmt"

	"github.com/sustainamine/sustainamine/internal/service/report/types"
	"github.com/xuri/excelize/v2"
)

const (
	SheetSummary    = "Summary"
	SheetCompliance = "Compliance"
	SheetReferences = "References"
)

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) SupportedFormat() types.ReportFormat {
	return types.ReportFormatXLSX
}

func (r *Renderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (r *Renderer) Render(data *types.ReportData) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D9EAD3"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, fmt.Errorf("failed to rename default sheet: %w", err)
	}
	for _, name := range []string{SheetCompliance, SheetReferences} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	w := &sheetWriter{file: f, headerStyle: headerStyle}
	w.writeSummary(data)
	w.writeCompliance(data)
	w.writeReferences(data)
	if w.err != nil {
		return nil, w.err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

// sheetWriter keeps the first error so the sheet layout reads top to bottom.
type sheetWriter struct {
	file        *excelize.File
	headerStyle int
	err         error
}

func (w *sheetWriter) row(sheet string, row int, values ...interface{}) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		w.err = err
		return
	}
	if err := w.file.SetSheetRow(sheet, cell, &values); err != nil {
		w.err = fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
}

func (w *sheetWriter) header(sheet string, row int, values ...interface{}) {
	w.row(sheet, row, values...)
	if w.err != nil {
		return
	}
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(len(values), row)
	if err := w.file.SetCellStyle(sheet, first, last, w.headerStyle); err != nil {
		w.err = fmt.Errorf("failed to style %s row %d: %w", sheet, row, err)
	}
}

func (w *sheetWriter) width(sheet, startCol, endCol string, width float64) {
	if w.err != nil {
		return
	}
	if err := w.file.SetColWidth(sheet, startCol, endCol, width); err != nil {
		w.err = err
	}
}

func (w *sheetWriter) fields(sheet string, row int, header string, fields []types.Field) int {
	w.header(sheet, row, header, "Value")
	row++
	for _, f := range fields {
		w.row(sheet, row, f.Label, f.Value)
		row++
	}
	return row + 1
}

func (w *sheetWriter) writeSummary(data *types.ReportData) {
	w.row(SheetSummary, 1, data.Title)
	w.row(SheetSummary, 2, fmt.Sprintf("Generated: %s at %s", data.Timestamps.Generated, data.Timestamps.GeneratedTime))
	w.row(SheetSummary, 3, "Estimate ID", data.EstimateID)

	row := w.fields(SheetSummary, 5, "Input", data.Inputs)
	row = w.fields(SheetSummary, row, "Output", data.Outputs)
	row = w.fields(SheetSummary, row, "Stage (per tonne)", data.Breakdown)

	w.header(SheetSummary, row, "By-product")
	w.row(SheetSummary, row+1, data.ByProduct)
	w.row(SheetSummary, row+2, data.ByProductNarrative)
	w.width(SheetSummary, "A", "A", 36)
	w.width(SheetSummary, "B", "B", 48)
}

func (w *sheetWriter) writeCompliance(data *types.ReportData) {
	w.header(SheetCompliance, 1, "Topic", "Message", "Severity", "Source")
	row := 2
	for _, f := range data.ComplianceFlags {
		w.row(SheetCompliance, row, f.Topic, f.Message, string(f.Severity), string(f.Source))
		row++
	}

	row++
	w.header(SheetCompliance, row, "Recommendation")
	for _, rec := range data.Recommendations {
		row++
		w.row(SheetCompliance, row, rec)
	}
	w.width(SheetCompliance, "A", "A", 24)
	w.width(SheetCompliance, "B", "B", 100)
}

func (w *sheetWriter) writeReferences(data *types.ReportData) {
	w.header(SheetReferences, 1, "Key", "Title", "URL")
	for i, s := range data.Sources {
		w.row(SheetReferences, i+2, s.Key, s.Title, s.URL)
	}
	w.row(SheetReferences, len(data.Sources)+3, data.Disclaimer)
	w.width(SheetReferences, "A", "B", 40)
	w.width(SheetReferences, "C", "C", 90)
}
