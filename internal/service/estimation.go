package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sustainamine/sustainamine/internal/estimation"
	"github.com/sustainamine/sustainamine/internal/events"
	"github.com/sustainamine/sustainamine/internal/model"
	"github.com/sustainamine/sustainamine/internal/reference"
	"github.com/sustainamine/sustainamine/pkg/metrics"
	"go.uber.org/zap"
)

// PolicyEvaluator raises site specific compliance flags. It is implemented by *opa.Validator.
type PolicyEvaluator interface {
	Flags(ctx context.Context, in estimation.Input, result estimation.Result) ([]estimation.ComplianceFlag, error)
}

// EstimateRequest is an estimate input with the optional extraction state.
type EstimateRequest struct {
	Input estimation.Input
	State string
}

// EstimationService runs estimates through the Calculator and the site policies.
type EstimationService struct {
	calculator *estimation.Calculator
	policies   PolicyEvaluator
	events     EventWriter
	now        func() time.Time
}

// NewEstimationService creates the service. policies may be nil when no site policies are configured.
func NewEstimationService(calculator *estimation.Calculator, policies PolicyEvaluator) *EstimationService {
	return &EstimationService{
		calculator: calculator,
		policies:   policies,
		now:        time.Now,
	}
}

// WithEventWriter publishes an EstimateEvent for every computed estimate.
func (es *EstimationService) WithEventWriter(w EventWriter) *EstimationService {
	es.events = w
	return es
}

// Factors returns the factors the estimates are computed with.
func (es *EstimationService) Factors() estimation.Factors {
	return es.calculator.Factors()
}

// Estimate validates the request and computes a new estimate. Policy flags follow the built-in flags.
func (es *EstimationService) Estimate(ctx context.Context, req EstimateRequest) (*model.Estimate, error) {
	logger := zap.S().Named("estimation_service")

	result, err := es.calculator.Estimate(req.Input)
	if err != nil {
		es.recordValidationError(err)
		logger.Debugw("rejected estimate request", "error", err)
		return nil, NewErrInvalidInput(err)
	}

	state, err := reference.NormalizeState(req.Input.Metal, req.State)
	if err != nil {
		es.recordValidationError(err)
		return nil, NewErrInvalidInput(err)
	}

	if es.policies != nil {
		flags, err := es.policies.Flags(ctx, req.Input, result)
		if err != nil {
			logger.Errorw("failed to evaluate site policies", "error", err)
			return nil, NewErrPolicyEvaluation(err)
		}
		result.ComplianceFlags = append(result.ComplianceFlags, flags...)
	}

	estimate := &model.Estimate{
		ID:        uuid.New(),
		CreatedAt: es.now().UTC(),
		State:     state,
		Input:     req.Input,
		Result:    result,
	}

	metrics.IncreaseEstimatesTotalMetric(string(req.Input.Metal), string(req.Input.ProductionRoute))
	for _, f := range result.ComplianceFlags {
		metrics.IncreaseComplianceFlagsMetric(f.Topic, string(f.Source))
	}

	publishEvent(ctx, es.events, events.EstimateMessageKind, estimateEvent(estimate))

	logger.Debugw("estimate computed",
		"id", estimate.ID,
		"metal", req.Input.Metal,
		"co2_per_kg", result.Co2PerKg,
		"flags", len(result.ComplianceFlags))

	return estimate, nil
}

func (es *EstimationService) recordValidationError(err error) {
	var verr *estimation.ValidationError
	if errors.As(err, &verr) {
		metrics.IncreaseValidationErrorsMetric(verr.Field)
	}
}

func estimateEvent(e *model.Estimate) events.EstimateEvent {
	topics := make([]string, 0, len(e.Result.ComplianceFlags))
	for _, f := range e.Result.ComplianceFlags {
		topics = append(topics, f.Topic)
	}
	return events.EstimateEvent{
		EstimateID:       e.ID.String(),
		CreatedAt:        e.CreatedAt,
		Metal:            string(e.Input.Metal),
		ProductionRoute:  string(e.Input.ProductionRoute),
		State:            e.State,
		Co2PerKg:         e.Result.Co2PerKg,
		TotalCo2PerTonne: e.Result.TotalCo2PerTonne,
		CircularityScore: e.Result.CircularityScore,
		FlagTopics:       topics,
	}
}
