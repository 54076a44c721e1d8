package v1alpha1

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/sustainamine/sustainamine/api/v1alpha1"
	"github.com/sustainamine/sustainamine/internal/handlers/v1alpha1/mappers"
	"github.com/sustainamine/sustainamine/pkg/version"
)

// (GET /api/v1/info)
func (h *ServiceHandler) GetInfo(w http.ResponseWriter, r *http.Request) {
	versionInfo := version.Get()

	render.JSON(w, r, v1alpha1.Info{
		GitVersion: versionInfo.GitVersion,
		GitCommit:  versionInfo.GitCommit,
		BuildDate:  versionInfo.BuildDate,
	})
}

// (GET /api/v1/factors)
func (h *ServiceHandler) GetFactors(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, mappers.FactorsToApi(h.estimationSrv.Factors()))
}

// (GET /api/v1/references)
func (h *ServiceHandler) GetReferences(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, mappers.ReferencesToApi())
}
