package mappers

import (
	"github.com/sustainamine/sustainamine/api/v1alpha1"
	"github.com/sustainamine/sustainamine/internal/estimation"
	"github.com/sustainamine/sustainamine/internal/service"
)

// EstimateRequestFromApi resolves the labels of the request to their canonical values.
func EstimateRequestFromApi(req v1alpha1.EstimateRequest) (service.EstimateRequest, error) {
	if req.RecycledPct == nil {
		return service.EstimateRequest{}, estimation.NewValidationError("recycledPct", "recycled content is required")
	}
	if req.TransportKm == nil {
		return service.EstimateRequest{}, estimation.NewValidationError("transportKm", "transport distance is required")
	}

	metal, err := estimation.ParseMetal(req.Metal)
	if err != nil {
		return service.EstimateRequest{}, err
	}
	quality, err := estimation.ParseOreQuality(req.OreQuality)
	if err != nil {
		return service.EstimateRequest{}, err
	}
	route, err := estimation.ParseProductionRoute(req.ProductionRoute)
	if err != nil {
		return service.EstimateRequest{}, err
	}
	energy, err := estimation.ParseEnergySource(req.EnergySource)
	if err != nil {
		return service.EstimateRequest{}, err
	}
	eol, err := estimation.ParseEndOfLife(req.EndOfLife)
	if err != nil {
		return service.EstimateRequest{}, err
	}
	storage, err := estimation.ParseStoragePractice(req.StoragePractice)
	if err != nil {
		return service.EstimateRequest{}, err
	}

	form := service.EstimateRequest{
		Input: estimation.Input{
			Metal:           metal,
			OreQuality:      quality,
			ProductionRoute: route,
			RecycledPct:     *req.RecycledPct,
			EnergySource:    energy,
			TransportKm:     *req.TransportKm,
			QuantityTonnes:  req.QuantityTonnes,
			EndOfLife:       eol,
			StoragePractice: storage,
		},
	}
	if req.State != nil {
		form.State = *req.State
	}

	return form, nil
}
