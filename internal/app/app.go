package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/gramseva/gramseva-backend/internal/adapter/postgres"
	pgadmin "github.com/gramseva/gramseva-backend/internal/adapter/postgres/admin"
	pganalytics "github.com/gramseva/gramseva-backend/internal/adapter/postgres/analytics"
	pgcategory "github.com/gramseva/gramseva-backend/internal/adapter/postgres/category"
	pgcertificate "github.com/gramseva/gramseva-backend/internal/adapter/postgres/certificate"
	pgcitizen "github.com/gramseva/gramseva-backend/internal/adapter/postgres/citizen"
	pgdocument "github.com/gramseva/gramseva-backend/internal/adapter/postgres/document"
	pggrievance "github.com/gramseva/gramseva-backend/internal/adapter/postgres/grievance"
	pgotpcode "github.com/gramseva/gramseva-backend/internal/adapter/postgres/otpcode"
	pgpayment "github.com/gramseva/gramseva-backend/internal/adapter/postgres/payment"
	pgrequest "github.com/gramseva/gramseva-backend/internal/adapter/postgres/request"
	"github.com/gramseva/gramseva-backend/internal/analytics"
	"github.com/gramseva/gramseva-backend/internal/auth"
	"github.com/gramseva/gramseva-backend/internal/chatbot"
	"github.com/gramseva/gramseva-backend/internal/config"
	"github.com/gramseva/gramseva-backend/internal/renderer"
	"github.com/gramseva/gramseva-backend/internal/service/authn"
	"github.com/gramseva/gramseva-backend/internal/service/certificate"
	"github.com/gramseva/gramseva-backend/internal/service/chat"
	"github.com/gramseva/gramseva-backend/internal/service/dashboard"
	"github.com/gramseva/gramseva-backend/internal/service/grievance"
	"github.com/gramseva/gramseva-backend/internal/service/payment"
	"github.com/gramseva/gramseva-backend/internal/service/request"
	"github.com/gramseva/gramseva-backend/internal/storage"
	"github.com/gramseva/gramseva-backend/internal/transport/middleware"
	"github.com/gramseva/gramseva-backend/internal/transport/rest"
	"github.com/gramseva/gramseva-backend/migrations"
)

// Run is the application entry point. It loads configuration, wires the
// repositories and services, and serves HTTP until the context is
// cancelled or a termination signal arrives.
func Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if err := postgres.Migrate(ctx, cfg.Database.DSN, migrations.FS); err != nil {
		return fmt.Errorf("app: migrate: %w", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("app: connect database: %w", err)
	}
	defer pool.Close()

	files, err := storage.NewStore(cfg.Storage.Dir)
	if err != nil {
		return fmt.Errorf("app: init file store: %w", err)
	}

	// Repositories.
	citizens := pgcitizen.New(pool)
	admins := pgadmin.New(pool)
	codes := pgotpcode.New(pool)
	categories := pgcategory.New(pool)
	requests := pgrequest.New(pool)
	documents := pgdocument.New(pool)
	grievances := pggrievance.New(pool)
	payments := pgpayment.New(pool)
	certificates := pgcertificate.New(pool)
	events := pganalytics.New(pool)
	tx := postgres.NewTxManager(pool)

	jwt := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)
	recorder := analytics.NewRecorder(events, logger)
	defer recorder.Flush()

	var chatClient chatbot.Client
	if cfg.Chatbot.APIKey != "" {
		chatClient = chatbot.NewAnthropicClient(cfg.Chatbot.APIKey, cfg.Chatbot.Model)
	} else {
		logger.Warn("chatbot API key not set, using local responder only")
	}

	// Services.
	authnSvc := authn.NewService(logger, citizens, admins, codes, tx, jwt, recorder, cfg.Auth, cfg.OTP)
	requestSvc := request.NewService(logger, requests, categories, documents, files, tx, recorder, cfg.Upload)
	grievanceSvc := grievance.NewService(logger, grievances, tx, recorder)
	paymentSvc := payment.NewService(logger, payments, requests, recorder, cfg.Payment)
	certificateSvc := certificate.NewService(logger, certificates, requests, categories, citizens,
		renderer.NewTextRenderer(), files, tx, recorder, cfg.Certificate)
	dashboardSvc := dashboard.NewService(logger, requests, grievances, citizens, payments, events)
	chatSvc := chat.NewService(logger, chatClient, events)

	// HTTP surface.
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(registry)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.Window)
	defer rateLimiter.Stop()

	router := rest.NewRouter(rest.RouterDeps{
		Auth:           rest.NewAuthHandler(authnSvc, logger),
		Services:       rest.NewServiceHandler(requestSvc, cfg.Upload.MaxSizeBytes, logger),
		Grievances:     rest.NewGrievanceHandler(grievanceSvc, logger),
		Payments:       rest.NewPaymentHandler(paymentSvc, logger),
		Certificates:   rest.NewCertificateHandler(certificateSvc, logger),
		Admin:          rest.NewAdminHandler(dashboardSvc, requestSvc, grievanceSvc, logger),
		Chat:           rest.NewChatHandler(chatSvc, logger),
		Analytics:      rest.NewAnalyticsHandler(dashboardSvc, logger),
		Health:         rest.NewHealthHandler(pool, BuildVersion()),
		TokenValidator: jwt,
		Metrics:        metrics,
		RateLimiter:    rateLimiter,
		Registry:       registry,
		CORS:           cfg.CORS,
		RateLimit:      cfg.RateLimit,
		Logger:         logger,
	})

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("app: serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("app: shutdown: %w", err)
	}

	return nil
}
