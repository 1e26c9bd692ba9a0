package http

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	"github.com/dukasmart/partspos/internal/config"
	"github.com/dukasmart/partspos/internal/http/metric"
	"github.com/dukasmart/partspos/internal/http/middleware"
	"github.com/dukasmart/partspos/internal/http/session"
	"github.com/dukasmart/partspos/internal/http/swagger"
	"github.com/dukasmart/partspos/internal/service"
	"github.com/dukasmart/partspos/internal/storage/db"
	"github.com/dukasmart/partspos/pkg/validator"
)

var tracer = otel.Tracer("internal/http")

// Service represents the HTTP service.
type Service struct {
	cfg       config.HTTP
	logger    *slog.Logger
	metrics   *metric.Metrics
	sessions  *session.Store
	validator validator.Validator
	health    db.HealthChecker

	authSvc    service.AuthService
	userSvc    service.UserService
	productSvc service.ProductService
	saleSvc    service.SaleService
	reportSvc  service.ReportService
}

type CleanupFunc func(ctx context.Context) error

func New(
	cfg config.HTTP,
	log *slog.Logger,
	sessions *session.Store,
	validator validator.Validator,
	health db.HealthChecker,
	authSvc service.AuthService,
	userSvc service.UserService,
	productSvc service.ProductService,
	saleSvc service.SaleService,
	reportSvc service.ReportService,
) *Service {
	return &Service{
		cfg:        cfg,
		logger:     log.With(slog.String("service", "http")),
		metrics:    metric.New(),
		sessions:   sessions,
		validator:  validator,
		health:     health,
		authSvc:    authSvc,
		userSvc:    userSvc,
		productSvc: productSvc,
		saleSvc:    saleSvc,
		reportSvc:  reportSvc,
	}
}

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	r := chi.NewRouter()
	s.RegisterMiddlewares(r)

	if s.cfg.Swagger {
		swagger.Register(r)
	}

	s.RegisterHandlers(r)

	return s.RunWithServer(ctx, r)
}

func (s *Service) RunWithServer(ctx context.Context, handler http.Handler) (CleanupFunc, error) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64 KB
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}, nil
}

func (s *Service) RegisterMiddlewares(r chi.Router) {
	r.Use(
		middleware.Recoverer(s.logger),
		middleware.Trace(tracer),
		middleware.Metrics(s.metrics),
		middleware.CorrelationID(),
		middleware.Cors(),
		middleware.Logging(s.logger),
		middleware.Session(s.sessions),
	)
}

func (s *Service) RegisterHandlers(r chi.Router) {
	res := &responder{logger: s.logger}

	auth := newAuthHandler(res, s.validator, s.sessions, s.authSvc, s.userSvc)
	product := newProductHandler(res, s.validator, s.productSvc)
	sale := newSaleHandler(res, s.validator, s.saleSvc)
	report := newReportHandler(res, s.reportSvc)
	user := newUserHandler(res, s.validator, s.userSvc)

	r.Get("/healthz", s.handleHealthz)
	r.Handle(middleware.MetricsPath, promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
		ErrorLog: log.Default(),
	}))

	r.Post("/auth/register", auth.register)
	r.Post("/auth/login", auth.login)
	r.Post("/auth/logout", auth.logout)
	r.With(middleware.RequireAuth).Get("/auth/me", auth.me)

	r.Get("/products/public", product.listPublic)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/products", product.list)
		r.Post("/products", product.create)
		r.Put("/products/{id}", product.update)
		r.Delete("/products/{id}", product.delete)
		r.Post("/products/{id}/restock", product.restock)

		r.Get("/sales", sale.list)
		r.Post("/sales", sale.create)
		r.Put("/sales/{id}", sale.update)
		r.Delete("/sales/{id}", sale.delete)

		r.Get("/reports/daily", report.daily)
		r.Get("/reports/low-stock", report.lowStock)

		r.Put("/users/{id}", user.update)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireOwner)

			r.Get("/reports/monthly", report.monthly)
			r.Get("/reports/yearly", report.yearly)

			r.Get("/users", user.list)
			r.Delete("/users/{id}", user.delete)
		})
	})
}

func (s *Service) handleHealthz(w http.ResponseWriter, r *http.Request) {
	healthy, err := s.health.IsHealthy(r.Context())
	if err != nil || !healthy {
		s.logger.ErrorContext(r.Context(), "health check failed", slog.Any("error", err))
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
}
