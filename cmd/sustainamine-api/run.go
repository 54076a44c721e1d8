package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	apiserver "github.com/sustainamine/sustainamine/internal/api_server"
	"github.com/sustainamine/sustainamine/internal/config"
	"github.com/sustainamine/sustainamine/internal/estimation"
	"github.com/sustainamine/sustainamine/internal/events"
	"github.com/sustainamine/sustainamine/internal/opa"
	"github.com/sustainamine/sustainamine/internal/service"
	"github.com/sustainamine/sustainamine/pkg/log"
	"go.uber.org/zap"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the estimate api",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			return err
		}

		_, cleanup := log.Setup(cfg.Service.LogLevel)
		defer cleanup()

		zap.S().Info("Starting API service")
		defer zap.S().Info("API service stopped")

		factors := estimation.DefaultFactors()
		if cfg.Model.FactorsFile != "" {
			factors, err = estimation.LoadFactors(cfg.Model.FactorsFile)
			if err != nil {
				zap.S().Fatalw("loading emission factors", "file", cfg.Model.FactorsFile, "error", err)
			}
			zap.S().Infow("using emission factors from file", "file", cfg.Model.FactorsFile)
		}
		calculator := estimation.NewCalculator(estimation.WithFactors(factors))

		// nil interface keeps site policies disabled
		var policies service.PolicyEvaluator
		if cfg.Model.PoliciesDir != "" {
			validator, err := opa.NewValidatorFromDir(cfg.Model.PoliciesDir)
			if err != nil {
				zap.S().Fatalw("loading compliance policies", "dir", cfg.Model.PoliciesDir, "error", err)
			}
			policies = validator
			zap.S().Infow("site compliance policies loaded", "dir", cfg.Model.PoliciesDir)
		}

		estimationSrv := service.NewEstimationService(calculator, policies)
		reportSrv := service.NewReportService()

		if cfg.Events.Enabled {
			producer := events.NewEventProducer(
				events.NewLogWriter(nil),
				events.WithOutputTopic(cfg.Events.Topic),
				events.WithQueueLimit(cfg.Events.QueueLimit),
			)
			defer func() { _ = producer.Close() }()

			estimationSrv.WithEventWriter(producer)
			reportSrv.WithEventWriter(producer)
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
		defer cancel()

		// the producer is closed only once in-flight requests are drained
		apiDone := make(chan struct{})
		go func() {
			defer close(apiDone)
			defer cancel()
			listener, err := newListener(cfg.Service.Address)
			if err != nil {
				zap.S().Fatalw("creating listener", "error", err)
			}

			server := apiserver.New(cfg, listener, estimationSrv, reportSrv)
			if err := server.Run(ctx); err != nil {
				zap.S().Fatalw("Error running server", "error", err)
			}
		}()

		go func() {
			defer cancel()
			listener, err := newListener(cfg.Service.MetricsAddress)
			if err != nil {
				zap.S().Fatalw("creating listener", "error", err)
			}

			metricsServer := apiserver.NewMetricServer(cfg.Service.MetricsAddress, listener)
			if err := metricsServer.Run(ctx); err != nil {
				zap.S().Fatalw("Error running metrics server", "error", err)
			}
		}()

		<-ctx.Done()
		<-apiDone
		return nil
	},
}

func newListener(address string) (net.Listener, error) {
	if address == "" {
		address = "localhost:0"
	}
	return net.Listen("tcp", address)
}
