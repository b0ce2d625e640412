package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/taxpadi/taxpadi-backend-go/internal/config"
	appHTTP "github.com/taxpadi/taxpadi-backend-go/internal/handler/http"
	"github.com/taxpadi/taxpadi-backend-go/internal/pkg/cron"
	"github.com/taxpadi/taxpadi-backend-go/internal/pkg/database"
	"github.com/taxpadi/taxpadi-backend-go/internal/pkg/jwt"
	"github.com/taxpadi/taxpadi-backend-go/internal/pkg/paystack"
	"github.com/taxpadi/taxpadi-backend-go/internal/repository/postgresql"
	companyService "github.com/taxpadi/taxpadi-backend-go/internal/service/company"
	deductionService "github.com/taxpadi/taxpadi-backend-go/internal/service/deduction"
	payrollService "github.com/taxpadi/taxpadi-backend-go/internal/service/payroll"
	subscriptionService "github.com/taxpadi/taxpadi-backend-go/internal/service/subscription"
	taxService "github.com/taxpadi/taxpadi-backend-go/internal/service/tax"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "taxpadi"),
	)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	deductionsRepo := postgresql.NewDeductionsRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	planRepo := postgresql.NewPlanRepository(db)
	subscriptionRepo := postgresql.NewSubscriptionRepository(db)
	paymentRepo := postgresql.NewPaymentRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)
	paystackClient := paystack.NewClient(cfg.Paystack)
	webhookVerifier := paystack.NewWebhookVerifier(cfg.Paystack.SecretKey)

	calculator := taxService.NewCalculator()
	deductionsSvc := deductionService.NewDeductionsService(deductionsRepo, cfg.Tax.RentReliefTolerance)
	payrollSvc := payrollService.NewPayrollService(db, payrollRepo, employeeRepo, deductionsRepo, calculator)
	taxProfileSvc := companyService.NewTaxProfileService(companyRepo, calculator)
	subscriptionSvc := subscriptionService.NewSubscriptionService(db, planRepo, subscriptionRepo, paymentRepo, paystackClient, logger)

	scheduler := cron.NewScheduler(logger)
	cron.NewSubscriptionJobs(subscriptionSvc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	taxHandler := appHTTP.NewTaxHandler(calculator)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc, subscriptionSvc)
	deductionsHandler := appHTTP.NewDeductionsHandler(deductionsSvc)
	companyHandler := appHTTP.NewCompanyHandler(taxProfileSvc, subscriptionSvc)
	subscriptionHandler := appHTTP.NewSubscriptionHandler(subscriptionSvc, webhookVerifier)

	router := appHTTP.NewRouter(
		jwtService,
		taxHandler,
		payrollHandler,
		deductionsHandler,
		companyHandler,
		subscriptionHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
