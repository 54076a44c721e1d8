package service_test

import (
	"bytes"
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sustainamine/sustainamine/internal/estimation"
	"github.com/sustainamine/sustainamine/internal/events"
	"github.com/sustainamine/sustainamine/internal/model"
	"github.com/sustainamine/sustainamine/internal/service"
)

var _ = Describe("ReportService", func() {
	var (
		ctx       context.Context
		reportSrv *service.ReportService
		estimate  *model.Estimate
	)

	BeforeEach(func() {
		ctx = context.TODO()
		reportSrv = service.NewReportService()

		var err error
		estimate, err = service.NewEstimationService(estimation.NewCalculator(), nil).
			Estimate(ctx, service.EstimateRequest{Input: aluminiumInput(), State: "Gujarat"})
		Expect(err).To(BeNil())
	})

	DescribeTable("Generate",
		func(format service.ReportFormat, contentType, filename string) {
			report, err := reportSrv.Generate(ctx, estimate, format)

			Expect(err).To(BeNil())
			Expect(report.Format).To(Equal(format))
			Expect(report.ContentType).To(Equal(contentType))
			Expect(report.Filename).To(Equal(filename))
			Expect(report.Content).NotTo(BeEmpty())
		},
		Entry("pdf", service.ReportFormatPDF, "application/pdf", "SustainaMine_LCA_Summary.pdf"),
		Entry("html", service.ReportFormatHTML, "text/html; charset=utf-8", "SustainaMine_LCA_Summary.html"),
		Entry("csv", service.ReportFormatCSV, "text/csv; charset=utf-8", "SustainaMine_LCA_Summary.csv"),
		Entry("xlsx", service.ReportFormatXLSX, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "SustainaMine_LCA_Summary.xlsx"),
	)

	It("includes the extraction state in the summary", func() {
		report, err := reportSrv.Generate(ctx, estimate, service.ReportFormatCSV)
		Expect(err).To(BeNil())
		Expect(bytes.Contains(report.Content, []byte("State,Gujarat"))).To(BeTrue())
	})

	It("publishes a report event", func() {
		w := &fakeEventWriter{}
		report, err := reportSrv.WithEventWriter(w).Generate(ctx, estimate, service.ReportFormatHTML)
		Expect(err).To(BeNil())

		Expect(w.events).To(HaveLen(1))
		Expect(w.events[0].kind).To(Equal(events.ReportMessageKind))
		Expect(string(w.events[0].data)).To(ContainSubstring(`"format":"html"`))
		Expect(string(w.events[0].data)).To(ContainSubstring(estimate.ID.String()))
		Expect(report.Content).NotTo(BeEmpty())
	})

	It("rejects an unknown format", func() {
		_, err := reportSrv.Generate(ctx, estimate, service.ReportFormat("docx"))

		var unsupported *service.ErrUnsupportedFormat
		Expect(errors.As(err, &unsupported)).To(BeTrue())
	})

	It("fails without an estimate", func() {
		_, err := reportSrv.Generate(ctx, nil, service.ReportFormatHTML)
		Expect(err).NotTo(BeNil())
	})

	Describe("ParseReportFormat", func() {
		It("defaults to pdf", func() {
			format, err := service.ParseReportFormat("")
			Expect(err).To(BeNil())
			Expect(format).To(Equal(service.ReportFormatPDF))
		})

		It("ignores case", func() {
			format, err := service.ParseReportFormat("XLSX")
			Expect(err).To(BeNil())
			Expect(format).To(Equal(service.ReportFormatXLSX))
		})

		It("rejects unknown formats", func() {
			_, err := service.ParseReportFormat("docx")
			var unsupported *service.ErrUnsupportedFormat
			Expect(errors.As(err, &unsupported)).To(BeTrue())
		})
	})
})
