package apiserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	oapimiddleware "github.com/oapi-codegen/nethttp-middleware"
	"go.uber.org/zap"

	api "github.com/sustainamine/sustainamine/api/v1alpha1"
	"github.com/sustainamine/sustainamine/internal/config"
	handlers "github.com/sustainamine/sustainamine/internal/handlers/v1alpha1"
	"github.com/sustainamine/sustainamine/internal/service"
	"github.com/sustainamine/sustainamine/internal/util"
	"github.com/sustainamine/sustainamine/pkg/metrics"
	"github.com/sustainamine/sustainamine/pkg/middleware"
)

const (
	gracefulShutdownTimeout = 5 * time.Second
)

type Server struct {
	cfg           *config.Config
	listener      net.Listener
	estimationSrv *service.EstimationService
	reportSrv     *service.ReportService
}

// New returns a new instance of the estimate API server.
func New(
	cfg *config.Config,
	listener net.Listener,
	estimationSrv *service.EstimationService,
	reportSrv *service.ReportService,
) *Server {
	return &Server{
		cfg:           cfg,
		listener:      listener,
		estimationSrv: estimationSrv,
		reportSrv:     reportSrv,
	}
}

// oapiErrorHandler has no access to the request, so the body carries no request id.
func oapiErrorHandler(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(api.Error{Message: fmt.Sprintf("API Error: %s", message)})
}

// Router builds the HTTP handler of the server. The request schema is only enforced under /api/v1.
func (s *Server) Router(metricMiddleware *metrics.Middleware) (http.Handler, error) {
	swagger, err := api.GetSwagger()
	if err != nil {
		return nil, fmt.Errorf("failed to load swagger spec: %w", err)
	}
	// Skip server name validation
	swagger.Servers = nil

	oapiOpts := oapimiddleware.Options{
		ErrorHandler: oapiErrorHandler,
	}

	router := chi.NewRouter()

	if s.cfg.Service.PathPrefix != "" {
		router.Use(util.StripPathPrefix(s.cfg.Service.PathPrefix))
	}

	router.Use(
		metricMiddleware.Handler,
		cors.Handler(cors.Options{
			AllowedOrigins:   s.cfg.Service.CorsAllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "HEAD", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			ExposedHeaders:   []string{"Content-Disposition", "X-Request-Id"},
			AllowCredentials: true,
			MaxAge:           300,
		}),
		middleware.RequestID,
		middleware.Logger(),
		chiMiddleware.Recoverer,
	)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, api.Health{Status: "ok"})
	})

	h := handlers.NewServiceHandler(s.estimationSrv, s.reportSrv)
	router.Group(func(r chi.Router) {
		r.Use(oapimiddleware.OapiRequestValidatorWithOptions(swagger, &oapiOpts))
		h.Routes(r)
	})

	return router, nil
}

func (s *Server) Run(ctx context.Context) error {
	zap.S().Named("api_server").Info("Initializing API server")

	metricMiddleware := metrics.NewMiddleware("api_server")
	metricMiddleware.MustRegisterDefault()

	router, err := s.Router(metricMiddleware)
	if err != nil {
		return err
	}

	srv := http.Server{Addr: s.cfg.Service.Address, Handler: router}

	go func() {
		<-ctx.Done()
		zap.S().Named("api_server").Infof("Shutdown signal received: %s", ctx.Err())
		ctxTimeout, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		_ = srv.Shutdown(ctxTimeout)
		zap.S().Named("api_server").Info("api server terminated")
	}()

	zap.S().Named("api_server").Infof("Listening on %s...", s.listener.Addr().String())
	if err := srv.Serve(s.listener); err != nil && !errors.Is(err, net.ErrClosed) && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
