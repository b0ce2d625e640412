package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/taxpadi/taxpadi-backend-go/internal/handler/http/middleware"
	"github.com/taxpadi/taxpadi-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	taxHandler TaxHandler,
	payrollHandler PayrollHandler,
	deductionsHandler DeductionsHandler,
	companyHandler CompanyHandler,
	subscriptionHandler SubscriptionHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "taxpadi"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Gateway webhooks authenticate by signature, not JWT.
		r.Post("/webhooks/paystack", subscriptionHandler.HandleWebhook)

		r.Get("/plans", subscriptionHandler.ListPlans)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/tax", func(r chi.Router) {
				r.Post("/paye", taxHandler.ComputePAYE)
				r.Post("/cit", taxHandler.ClassifyCIT)
				r.Get("/vat", taxHandler.CheckVAT)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Post("/batches", payrollHandler.GenerateBatch)
				r.Get("/schedules", payrollHandler.GetSchedule)
				r.Patch("/schedules/{scheduleID}/status", payrollHandler.UpdateScheduleStatus)
				r.Get("/records", payrollHandler.ListRecords)
				r.Get("/records/{employeeID}", payrollHandler.GetEmployeeRecord)
			})

			r.Route("/deductions", func(r chi.Router) {
				r.Put("/", deductionsHandler.Upsert)
				r.Get("/{taxYear}", deductionsHandler.Get)
				r.Delete("/{taxYear}", deductionsHandler.Delete)
			})

			r.Route("/companies/{companyID}/tax-profile", func(r chi.Router) {
				r.Post("/", companyHandler.Classify)
				r.Get("/{taxYear}", companyHandler.GetTaxProfile)
			})

			r.Route("/subscriptions", func(r chi.Router) {
				r.Get("/my", subscriptionHandler.GetMySubscription)
				r.Post("/upgrade/preview", subscriptionHandler.PreviewUpgrade)
				r.Post("/upgrade", subscriptionHandler.InitiateUpgrade)
			})
		})
	})
	return r
}
