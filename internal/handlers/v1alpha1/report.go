package v1alpha1

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/sustainamine/sustainamine/internal/service"
	"github.com/sustainamine/sustainamine/pkg/requestid"
	"go.uber.org/zap"
)

// (POST /api/v1/reports)
func (h *ServiceHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	logger := zap.S().Named("report_handler").With("request_id", requestid.FromRequest(r))

	format, err := service.ParseReportFormat(r.URL.Query().Get("format"))
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	form, err := h.decodeEstimateRequest(r)
	if err != nil {
		logger.Debugw("invalid report request", "error", err)
		WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	estimate, err := h.estimationSrv.Estimate(r.Context(), form)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			logger.Errorw("failed to compute estimate", "error", err)
			WriteError(w, r, status, "failed to compute estimate")
			return
		}
		WriteError(w, r, status, err.Error())
		return
	}

	report, err := h.reportSrv.Generate(r.Context(), estimate, format)
	if err != nil {
		logger.Errorw("failed to generate report", "format", format, "error", err)
		WriteError(w, r, http.StatusInternalServerError, "failed to generate report")
		return
	}

	logger.Infow("report generated", "id", estimate.ID, "format", report.Format, "size", len(report.Content))

	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(report.Content)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(report.Content)
}
