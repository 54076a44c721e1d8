package types

import (
	"github.com/sustainamine/sustainamine/internal/estimation"
	"github.com/sustainamine/sustainamine/internal/model"
	"github.com/sustainamine/sustainamine/internal/reference"
)

const (
	ReportTitle    = "SustainaMine - LCA Summary (Illustrative)"
	FilenamePrefix = "SustainaMine_LCA_Summary"
)

type ReportRenderer interface {
	Render(data *ReportData) ([]byte, error)
	SupportedFormat() ReportFormat
	ContentType() string
}

type EstimateProcessor interface {
	ProcessEstimate(estimate *model.Estimate) (*ReportData, error)
}

type ReportFormat string

const (
	ReportFormatPDF  ReportFormat = "pdf"
	ReportFormatHTML ReportFormat = "html"
	ReportFormatCSV  ReportFormat = "csv"
	ReportFormatXLSX ReportFormat = "xlsx"
)

var ReportFormats = []ReportFormat{ReportFormatPDF, ReportFormatHTML, ReportFormatCSV, ReportFormatXLSX}

// Filename is the attachment name of a report in this format.
func (f ReportFormat) Filename() string {
	return FilenamePrefix + "." + string(f)
}

// Field is a preformatted label/value pair shared by every renderer.
type Field struct {
	Label string
	Value string
}

type ReportData struct {
	Title      string
	EstimateID string
	Metal      estimation.Metal

	Inputs    []Field
	Outputs   []Field
	Breakdown []Field

	// ByProduct is the one line by-product estimate, ByProductNarrative its valorisation routes.
	ByProduct          string
	ByProductNarrative string

	ComplianceFlags []estimation.ComplianceFlag
	Recommendations []string
	Sources         []reference.Source
	Disclaimer      string
	Timestamps      ReportTimestamps
}

type ReportTimestamps struct {
	Generated     string
	GeneratedTime string
}
