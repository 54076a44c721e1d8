package v1alpha1

import (
	"github.com/go-chi/chi/v5"
	"github.com/sustainamine/sustainamine/internal/handlers/validator"
	"github.com/sustainamine/sustainamine/internal/service"
)

type ServiceHandler struct {
	estimationSrv *service.EstimationService
	reportSrv     *service.ReportService
	validator     *validator.Validator
}

func NewServiceHandler(estimationSrv *service.EstimationService, reportSrv *service.ReportService) *ServiceHandler {
	v := validator.NewValidator()
	v.Register(validator.NewEstimateValidationRules()...)

	return &ServiceHandler{
		estimationSrv: estimationSrv,
		reportSrv:     reportSrv,
		validator:     v,
	}
}

// Routes mounts the v1 API on r.
func (h *ServiceHandler) Routes(r chi.Router) {
	r.Get("/api/v1/info", h.GetInfo)
	r.Get("/api/v1/factors", h.GetFactors)
	r.Get("/api/v1/references", h.GetReferences)
	r.Post("/api/v1/estimates", h.CreateEstimate)
	r.Post("/api/v1/reports", h.CreateReport)
}
