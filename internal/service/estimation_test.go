package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sustainamine/sustainamine/internal/estimation"
	"github.com/sustainamine/sustainamine/internal/events"
	"github.com/sustainamine/sustainamine/internal/opa"
	"github.com/sustainamine/sustainamine/internal/service"
)

const transportPolicy = `package sustainamine.compliance

flags contains flag if {
	input.input.transportKm > 1000
	flag := {"topic": "Logistics", "message": "Long haul transport - consider rail", "severity": "info"}
}
`

type failingPolicies struct{}

func (failingPolicies) Flags(_ context.Context, _ estimation.Input, _ estimation.Result) ([]estimation.ComplianceFlag, error) {
	return nil, errors.New("policy engine unavailable")
}

type recordedEvent struct {
	kind string
	data []byte
}

type fakeEventWriter struct {
	events []recordedEvent
}

func (f *fakeEventWriter) Write(_ context.Context, kind string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.events = append(f.events, recordedEvent{kind: kind, data: data})
	return nil
}

func aluminiumInput() estimation.Input {
	return estimation.Input{
		Metal:           estimation.MetalAluminium,
		OreQuality:      estimation.OreQualityHigh,
		ProductionRoute: estimation.ProductionRouteVirgin,
		EnergySource:    estimation.EnergySourceMixed,
		TransportKm:     200,
		QuantityTonnes:  1,
		EndOfLife:       estimation.EndOfLifeLandfill,
		StoragePractice: estimation.StoragePracticeAuthorized,
	}
}

var _ = Describe("EstimationService", func() {
	var (
		ctx           context.Context
		estimationSrv *service.EstimationService
	)

	BeforeEach(func() {
		ctx = context.TODO()
		estimationSrv = service.NewEstimationService(estimation.NewCalculator(), nil)
	})

	Describe("Estimate", func() {
		Context("successful estimate", func() {
			It("computes the estimate and assigns an id", func() {
				estimate, err := estimationSrv.Estimate(ctx, service.EstimateRequest{Input: aluminiumInput(), State: "odisha"})

				Expect(err).To(BeNil())
				Expect(estimate.ID.String()).NotTo(BeEmpty())
				Expect(estimate.CreatedAt.IsZero()).To(BeFalse())
				Expect(estimate.State).To(Equal("Odisha"))
				Expect(estimate.Result.Co2PerKg).To(BeNumerically("~", 16.0, 1e-9))
				Expect(estimate.Result.TotalCo2PerTonne).To(BeNumerically("~", 16010, 1e-9))
			})

			It("assigns a different id to each estimate", func() {
				first, err := estimationSrv.Estimate(ctx, service.EstimateRequest{Input: aluminiumInput()})
				Expect(err).To(BeNil())
				second, err := estimationSrv.Estimate(ctx, service.EstimateRequest{Input: aluminiumInput()})
				Expect(err).To(BeNil())

				Expect(first.ID).NotTo(Equal(second.ID))
				Expect(first.Result).To(Equal(second.Result))
			})

			It("keeps an empty state empty", func() {
				estimate, err := estimationSrv.Estimate(ctx, service.EstimateRequest{Input: aluminiumInput()})
				Expect(err).To(BeNil())
				Expect(estimate.State).To(BeEmpty())
			})
		})

		Context("invalid requests", func() {
			It("rejects an invalid input", func() {
				in := aluminiumInput()
				in.QuantityTonnes = 0

				_, err := estimationSrv.Estimate(ctx, service.EstimateRequest{Input: in})
				Expect(err).NotTo(BeNil())

				var invalid *service.ErrInvalidInput
				Expect(errors.As(err, &invalid)).To(BeTrue())

				var verr *estimation.ValidationError
				Expect(errors.As(err, &verr)).To(BeTrue())
				Expect(verr.Field).To(Equal("quantityTonnes"))
			})

			It("rejects a state that does not produce the metal", func() {
				_, err := estimationSrv.Estimate(ctx, service.EstimateRequest{Input: aluminiumInput(), State: "Rajasthan"})

				var verr *estimation.ValidationError
				Expect(errors.As(err, &verr)).To(BeTrue())
				Expect(verr.Field).To(Equal("state"))
			})
		})

		Context("with site policies", func() {
			It("appends policy flags after the built-in flags", func() {
				validator, err := opa.NewValidator(map[string]string{"transport.rego": transportPolicy})
				Expect(err).To(BeNil())
				estimationSrv = service.NewEstimationService(estimation.NewCalculator(), validator)

				in := aluminiumInput()
				in.TransportKm = 2000

				estimate, err := estimationSrv.Estimate(ctx, service.EstimateRequest{Input: in})
				Expect(err).To(BeNil())

				flags := estimate.Result.ComplianceFlags
				Expect(flags).To(HaveLen(3))
				Expect(flags[0].Topic).To(Equal(estimation.TopicRedMud))
				Expect(flags[1].Topic).To(Equal(estimation.TopicCircularity))
				Expect(flags[2].Topic).To(Equal("Logistics"))
				Expect(flags[2].Source).To(Equal(estimation.FlagSourcePolicy))
			})

			It("fails when the policies cannot be evaluated", func() {
				estimationSrv = service.NewEstimationService(estimation.NewCalculator(), failingPolicies{})

				_, err := estimationSrv.Estimate(ctx, service.EstimateRequest{Input: aluminiumInput()})

				var policyErr *service.ErrPolicyEvaluation
				Expect(errors.As(err, &policyErr)).To(BeTrue())
			})
		})
	})

	Describe("events", func() {
		It("publishes an estimate event", func() {
			w := &fakeEventWriter{}
			estimationSrv = service.NewEstimationService(estimation.NewCalculator(), nil).WithEventWriter(w)

			estimate, err := estimationSrv.Estimate(ctx, service.EstimateRequest{Input: aluminiumInput(), State: "Odisha"})
			Expect(err).To(BeNil())

			Expect(w.events).To(HaveLen(1))
			Expect(w.events[0].kind).To(Equal(events.EstimateMessageKind))

			var event events.EstimateEvent
			Expect(json.Unmarshal(w.events[0].data, &event)).To(Succeed())
			Expect(event.EstimateID).To(Equal(estimate.ID.String()))
			Expect(event.State).To(Equal("Odisha"))
			Expect(event.FlagTopics).To(Equal([]string{estimation.TopicRedMud, estimation.TopicCircularity}))
		})

		It("publishes nothing for a rejected request", func() {
			w := &fakeEventWriter{}
			estimationSrv = service.NewEstimationService(estimation.NewCalculator(), nil).WithEventWriter(w)

			in := aluminiumInput()
			in.RecycledPct = 101
			_, err := estimationSrv.Estimate(ctx, service.EstimateRequest{Input: in})
			Expect(err).NotTo(BeNil())
			Expect(w.events).To(BeEmpty())
		})

		It("still answers after the producer is closed", func() {
			producer := events.NewEventProducer(events.NewLogWriter(nil))
			Expect(producer.Close()).To(Succeed())
			estimationSrv = service.NewEstimationService(estimation.NewCalculator(), nil).WithEventWriter(producer)

			done := make(chan error, 1)
			go func() {
				_, err := estimationSrv.Estimate(ctx, service.EstimateRequest{Input: aluminiumInput()})
				done <- err
			}()
			Eventually(done).Should(Receive(BeNil()))
		})
	})

	Describe("Factors", func() {
		It("returns the calculator factors", func() {
			f := estimation.DefaultFactors()
			f.CopperVirgin = 9
			estimationSrv = service.NewEstimationService(estimation.NewCalculator(estimation.WithFactors(f)), nil)

			Expect(estimationSrv.Factors().CopperVirgin).To(Equal(9.0))
		})
	})
})
