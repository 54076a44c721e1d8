package v1alpha1_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	api "github.com/sustainamine/sustainamine/api/v1alpha1"
	"github.com/sustainamine/sustainamine/internal/estimation"
	handlers "github.com/sustainamine/sustainamine/internal/handlers/v1alpha1"
	"github.com/sustainamine/sustainamine/internal/service"
	"github.com/sustainamine/sustainamine/pkg/middleware"
)

func aluminiumRequest() map[string]any {
	return map[string]any{
		"metal":           "Aluminium",
		"oreQuality":      "High",
		"productionRoute": "Virgin",
		"recycledPct":     0,
		"energySource":    "Mixed",
		"transportKm":     200,
		"quantityTonnes":  1,
		"endOfLife":       "Landfill",
		"storagePractice": "Authorized",
	}
}

var _ = Describe("ServiceHandler", func() {
	var router chi.Router

	BeforeEach(func() {
		h := handlers.NewServiceHandler(
			service.NewEstimationService(estimation.NewCalculator(), nil),
			service.NewReportService(),
		)
		router = chi.NewRouter()
		router.Use(middleware.RequestID)
		h.Routes(router)
	})

	do := func(method, target string, body any) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			Expect(json.NewEncoder(&buf).Encode(body)).To(Succeed())
		}
		req := httptest.NewRequest(method, target, &buf)
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	Context("info", func() {
		It("returns the build information", func() {
			rec := do(http.MethodGet, "/api/v1/info", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))

			var info api.Info
			Expect(json.Unmarshal(rec.Body.Bytes(), &info)).To(Succeed())
			Expect(info.GitVersion).NotTo(BeEmpty())
		})
	})

	Context("factors", func() {
		It("returns the factors in effect", func() {
			rec := do(http.MethodGet, "/api/v1/factors", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))

			var factors api.Factors
			Expect(json.Unmarshal(rec.Body.Bytes(), &factors)).To(Succeed())
			Expect(factors).To(HaveLen(9))
			Expect(factors["aluminium_virgin_kgco2_per_kg"]).To(Equal(16.0))
			Expect(factors["transport_kgco2_per_tkm"]).To(Equal(0.05))
		})
	})

	Context("references", func() {
		It("returns the sources and producing states", func() {
			rec := do(http.MethodGet, "/api/v1/references", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))

			var refs api.References
			Expect(json.Unmarshal(rec.Body.Bytes(), &refs)).To(Succeed())
			Expect(refs.Sources).To(HaveLen(6))
			Expect(refs.ProducingStates["Copper"]).To(ContainElement("Rajasthan"))
			Expect(refs.Disclaimer).NotTo(BeEmpty())
		})
	})

	Context("create estimate", func() {
		It("computes an aluminium estimate", func() {
			rec := do(http.MethodPost, "/api/v1/estimates", aluminiumRequest())
			Expect(rec.Code).To(Equal(http.StatusCreated))

			var estimate api.Estimate
			Expect(json.Unmarshal(rec.Body.Bytes(), &estimate)).To(Succeed())
			Expect(estimate.Id.String()).NotTo(BeEmpty())
			Expect(estimate.Result.Co2PerKg).To(BeNumerically("~", 16.0, 1e-9))
			Expect(estimate.Result.Co2PerTonneInclTransport).To(BeNumerically("~", 16010, 1e-9))
			Expect(estimate.Result.RedMudTonnes).To(BeNumerically("~", 1.5, 1e-9))
			Expect(estimate.Result.ComplianceFlags).To(HaveLen(2))
			Expect(estimate.Result.ComplianceFlags[0].Topic).To(Equal("Red mud handling"))
		})

		It("accepts display labels", func() {
			body := aluminiumRequest()
			body["metal"] = "Copper"
			body["oreQuality"] = "Medium (1–2% Cu)"
			body["productionRoute"] = "Mixed"
			body["recycledPct"] = 50
			body["energySource"] = "Renewable"
			body["storagePractice"] = "Untreated"
			body["state"] = "rajasthan"

			rec := do(http.MethodPost, "/api/v1/estimates", body)
			Expect(rec.Code).To(Equal(http.StatusCreated))

			var estimate api.Estimate
			Expect(json.Unmarshal(rec.Body.Bytes(), &estimate)).To(Succeed())
			Expect(estimate.Input.OreQuality).To(Equal("Medium"))
			Expect(estimate.Input.State).To(Equal("Rajasthan"))
			Expect(estimate.Result.Co2PerKg).To(BeNumerically("~", 4.0, 1e-9))
		})

		It("rejects a missing field", func() {
			body := aluminiumRequest()
			delete(body, "metal")

			rec := do(http.MethodPost, "/api/v1/estimates", body)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))

			var apiErr api.Error
			Expect(json.Unmarshal(rec.Body.Bytes(), &apiErr)).To(Succeed())
			Expect(apiErr.Message).To(ContainSubstring("metal is required"))
			Expect(apiErr.RequestId).NotTo(BeNil())
		})

		DescribeTable("rejects an omitted numeric field",
			func(field string) {
				body := aluminiumRequest()
				delete(body, field)

				rec := do(http.MethodPost, "/api/v1/estimates", body)
				Expect(rec.Code).To(Equal(http.StatusBadRequest))
				Expect(rec.Body.String()).To(ContainSubstring(field + " is required"))
			},
			Entry("recycled content", "recycledPct"),
			Entry("transport distance", "transportKm"),
		)

		It("accepts zero recycled content and zero distance", func() {
			body := aluminiumRequest()
			body["recycledPct"] = 0
			body["transportKm"] = 0

			rec := do(http.MethodPost, "/api/v1/estimates", body)
			Expect(rec.Code).To(Equal(http.StatusCreated))
		})

		It("rejects a quantity below one tonne", func() {
			body := aluminiumRequest()
			body["quantityTonnes"] = 0.5

			rec := do(http.MethodPost, "/api/v1/estimates", body)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(rec.Body.String()).To(ContainSubstring("quantityTonnes"))
		})

		It("rejects a state that does not produce the metal", func() {
			body := aluminiumRequest()
			body["state"] = "Rajasthan"

			rec := do(http.MethodPost, "/api/v1/estimates", body)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(rec.Body.String()).To(ContainSubstring("state"))
		})

		It("rejects a malformed body", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/estimates", bytes.NewBufferString("{"))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(rec.Body.String()).To(ContainSubstring("invalid request body"))
		})
	})

	Context("create report", func() {
		It("defaults to a pdf attachment", func() {
			rec := do(http.MethodPost, "/api/v1/reports", aluminiumRequest())
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Header().Get("Content-Type")).To(Equal("application/pdf"))
			Expect(rec.Header().Get("Content-Disposition")).To(Equal(`attachment; filename="SustainaMine_LCA_Summary.pdf"`))
			Expect(rec.Body.String()).To(HavePrefix("%PDF"))
		})

		It("renders the requested format", func() {
			rec := do(http.MethodPost, "/api/v1/reports?format=csv", aluminiumRequest())
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Header().Get("Content-Type")).To(Equal("text/csv; charset=utf-8"))
			Expect(rec.Body.String()).To(ContainSubstring("Red mud handling"))
		})

		It("rejects an unknown format", func() {
			rec := do(http.MethodPost, "/api/v1/reports?format=docx", aluminiumRequest())
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(rec.Body.String()).To(ContainSubstring("unsupported report format"))
		})

		It("rejects an invalid request", func() {
			body := aluminiumRequest()
			body["recycledPct"] = 150

			rec := do(http.MethodPost, "/api/v1/reports?format=html", body)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(rec.Body.String()).To(ContainSubstring("recycledPct must be at most 100"))
		})
	})
})
