package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/gramseva/gramseva-backend/internal/config"
	"github.com/gramseva/gramseva-backend/internal/transport/middleware"
)

// TokenValidator checks a bearer token and returns the subject and role.
type TokenValidator interface {
	ValidateAccessToken(token string) (uuid.UUID, string, error)
}

// RouterDeps bundles everything the router mounts.
type RouterDeps struct {
	Auth         *AuthHandler
	Services     *ServiceHandler
	Grievances   *GrievanceHandler
	Payments     *PaymentHandler
	Certificates *CertificateHandler
	Admin        *AdminHandler
	Chat         *ChatHandler
	Analytics    *AnalyticsHandler
	Health       *HealthHandler

	TokenValidator TokenValidator
	Metrics        *middleware.Metrics
	RateLimiter    *middleware.RateLimiter
	Registry       *prometheus.Registry

	CORS      config.CORSConfig
	RateLimit config.RateLimitConfig
	Logger    *slog.Logger
}

// NewRouter mounts the full HTTP surface under /api plus the probe and
// metrics endpoints.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.CORS(deps.CORS))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Instrument())
	}
	r.Use(middleware.Auth(deps.TokenValidator))

	r.Get("/health", deps.Health.Health)
	r.Get("/health/live", deps.Health.Live)
	r.Get("/health/ready", deps.Health.Ready)
	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics",
			promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(api chi.Router) {
		api.Route("/auth", func(ar chi.Router) {
			sendOTP := http.HandlerFunc(deps.Auth.SendOTP)
			if deps.RateLimiter != nil {
				ar.Method(http.MethodPost, "/send-otp",
					deps.RateLimiter.LimitRate(deps.RateLimit.Rate, deps.RateLimit.Burst)(sendOTP))
			} else {
				ar.Post("/send-otp", deps.Auth.SendOTP)
			}
			ar.Post("/verify-otp", deps.Auth.VerifyOTP)
			ar.Post("/admin/login", deps.Auth.AdminLogin)

			ar.Group(func(pr chi.Router) {
				pr.Use(middleware.RequireAuth)
				pr.Get("/profile", deps.Auth.Profile)
				pr.Put("/profile", deps.Auth.UpdateProfile)
			})
		})

		api.Route("/services", func(sr chi.Router) {
			sr.Get("/categories", deps.Services.Categories)
			sr.Get("/track/{requestNumber}", deps.Services.Track)

			sr.Group(func(pr chi.Router) {
				pr.Use(middleware.RequireAuth)
				pr.Post("/apply", deps.Services.Apply)
				pr.Post("/{requestID}/upload", deps.Services.Upload)
				pr.Get("/my-requests", deps.Services.MyRequests)
				pr.Get("/{requestID}/status", deps.Services.Status)
			})
		})

		api.Route("/grievances", func(gr chi.Router) {
			gr.Get("/track/{grievanceNumber}", deps.Grievances.Track)

			gr.Group(func(pr chi.Router) {
				pr.Use(middleware.RequireAuth)
				pr.Post("/submit", deps.Grievances.Submit)
				pr.Get("/my-grievances", deps.Grievances.MyGrievances)
				pr.Get("/{grievanceID}/status", deps.Grievances.Status)
			})
		})

		api.Route("/payments", func(pr chi.Router) {
			pr.Use(middleware.RequireAuth)
			pr.Post("/initiate", deps.Payments.Initiate)
			pr.Post("/verify", deps.Payments.Verify)
			pr.Get("/history", deps.Payments.History)
			pr.Get("/receipt/{paymentID}", deps.Payments.Receipt)
		})

		api.Route("/certificates", func(cr chi.Router) {
			cr.Get("/verify/{certificateNumber}", deps.Certificates.Verify)

			cr.Group(func(pr chi.Router) {
				pr.Use(middleware.RequireAuth)
				pr.Get("/download/{certificateID}", deps.Certificates.Download)
				pr.Get("/my-certificates", deps.Certificates.MyCertificates)
			})

			cr.Group(func(adm chi.Router) {
				adm.Use(middleware.RequireAdmin)
				adm.Post("/request/{requestID}", deps.Certificates.Issue)
			})
		})

		api.Route("/admin", func(adm chi.Router) {
			adm.Use(middleware.RequireAdmin)
			adm.Get("/dashboard", deps.Admin.Dashboard)
			adm.Get("/requests", deps.Admin.Requests)
			adm.Put("/requests/{requestID}/update", deps.Admin.UpdateRequest)
			adm.Get("/grievances", deps.Admin.Grievances)
			adm.Put("/grievances/{grievanceID}/update", deps.Admin.UpdateGrievance)
			adm.Get("/users", deps.Admin.Users)
			adm.Get("/revenue", deps.Admin.Revenue)
			adm.Get("/revenue/export", deps.Admin.RevenueExport)
		})

		api.Route("/chatbot", func(cr chi.Router) {
			cr.Post("/message", deps.Chat.Message)

			cr.Group(func(pr chi.Router) {
				pr.Use(middleware.RequireAuth)
				pr.Get("/history", deps.Chat.History)
			})
		})

		api.Route("/analytics", func(an chi.Router) {
			an.Use(middleware.RequireAdmin)
			an.Get("/overview", deps.Analytics.Overview)
			an.Get("/service-trends", deps.Analytics.ServiceTrends)
			an.Get("/grievance-trends", deps.Analytics.GrievanceTrends)
		})
	})

	return r
}
