package v1alpha1

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/sustainamine/sustainamine/api/v1alpha1"
	"github.com/sustainamine/sustainamine/internal/handlers/v1alpha1/mappers"
	"github.com/sustainamine/sustainamine/internal/service"
	"github.com/sustainamine/sustainamine/pkg/requestid"
	"go.uber.org/zap"
)

// (POST /api/v1/estimates)
func (h *ServiceHandler) CreateEstimate(w http.ResponseWriter, r *http.Request) {
	logger := zap.S().Named("estimation_handler").With("request_id", requestid.FromRequest(r))

	form, err := h.decodeEstimateRequest(r)
	if err != nil {
		logger.Debugw("invalid estimate request", "error", err)
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

	logger.Infow("estimate created", "id", estimate.ID, "metal", estimate.Input.Metal)

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, mappers.EstimateToApi(estimate))
}

// decodeEstimateRequest reads the body, runs the request rules and resolves the labels.
func (h *ServiceHandler) decodeEstimateRequest(r *http.Request) (service.EstimateRequest, error) {
	var body v1alpha1.EstimateRequest
	if err := render.DecodeJSON(r.Body, &body); err != nil {
		return service.EstimateRequest{}, errors.New("invalid request body")
	}

	if err := h.validator.Struct(body); err != nil {
		return service.EstimateRequest{}, err
	}

	return mappers.EstimateRequestFromApi(body)
}
