package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sustainamine/sustainamine/internal/events"
	"github.com/sustainamine/sustainamine/internal/model"
	"github.com/sustainamine/sustainamine/internal/service/report"
	"github.com/sustainamine/sustainamine/internal/service/report/csv"
	"github.com/sustainamine/sustainamine/internal/service/report/html"
	"github.com/sustainamine/sustainamine/internal/service/report/pdf"
	"github.com/sustainamine/sustainamine/internal/service/report/types"
	"github.com/sustainamine/sustainamine/internal/service/report/xlsx"
	"github.com/sustainamine/sustainamine/pkg/metrics"
	"go.uber.org/zap"
)

type ReportRenderer = types.ReportRenderer
type EstimateProcessor = types.EstimateProcessor
type ReportFormat = types.ReportFormat
type ReportData = types.ReportData

const (
	ReportFormatPDF  = types.ReportFormatPDF
	ReportFormatHTML = types.ReportFormatHTML
	ReportFormatCSV  = types.ReportFormatCSV
	ReportFormatXLSX = types.ReportFormatXLSX

	DefaultReportFormat = ReportFormatPDF
)

// ReportFormats lists the formats in the order they are offered.
var ReportFormats = types.ReportFormats

// Report is a rendered summary document ready to be saved or served.
type Report struct {
	Format      ReportFormat
	Filename    string
	ContentType string
	Content     []byte
}

type ReportService struct {
	processor types.EstimateProcessor
	renderers map[types.ReportFormat]types.ReportRenderer
	events    EventWriter
}

func NewReportService() *ReportService {
	service := &ReportService{
		processor: report.NewStandardEstimateProcessor(),
		renderers: make(map[types.ReportFormat]types.ReportRenderer),
	}

	for _, renderer := range []types.ReportRenderer{
		pdf.NewRenderer(),
		html.NewRenderer(),
		csv.NewRenderer(),
		xlsx.NewRenderer(),
	} {
		service.renderers[renderer.SupportedFormat()] = renderer
	}

	return service
}

// WithEventWriter publishes a ReportEvent for every generated report.
func (r *ReportService) WithEventWriter(w EventWriter) *ReportService {
	r.events = w
	return r
}

// ParseReportFormat maps an empty format to the default PDF.
func ParseReportFormat(format string) (ReportFormat, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		return DefaultReportFormat, nil
	}
	for _, f := range types.ReportFormats {
		if string(f) == format {
			return f, nil
		}
	}
	return "", NewErrUnsupportedFormat(format)
}

func (r *ReportService) Generate(ctx context.Context, estimate *model.Estimate, format ReportFormat) (*Report, error) {
	renderer, exists := r.renderers[format]
	if !exists {
		return nil, NewErrUnsupportedFormat(string(format))
	}

	reportData, err := r.processor.ProcessEstimate(estimate)
	if err != nil {
		metrics.IncreaseReportsTotalMetric(string(format), metrics.StatusFailure)
		return nil, fmt.Errorf("failed to process estimate: %w", err)
	}

	content, err := renderer.Render(reportData)
	if err != nil {
		metrics.IncreaseReportsTotalMetric(string(format), metrics.StatusFailure)
		zap.S().Named("report_service").Errorw("failed to render report", "format", format, "error", err)
		return nil, fmt.Errorf("failed to render %s report: %w", format, err)
	}

	metrics.IncreaseReportsTotalMetric(string(format), metrics.StatusSuccess)
	publishEvent(ctx, r.events, events.ReportMessageKind, events.ReportEvent{
		EstimateID: estimate.ID.String(),
		Format:     string(format),
		SizeBytes:  len(content),
	})

	return &Report{
		Format:      format,
		Filename:    format.Filename(),
		ContentType: renderer.ContentType(),
		Content:     content,
	}, nil
}
