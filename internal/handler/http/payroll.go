package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"

	"github.com/taxpadi/taxpadi-backend-go/internal/domain/employee"
	"github.com/taxpadi/taxpadi-backend-go/internal/domain/payroll"
	"github.com/taxpadi/taxpadi-backend-go/internal/domain/subscription"
	"github.com/taxpadi/taxpadi-backend-go/internal/handler/http/response"
)

// Helper to get account_id and email from JWT context
func getClaimsFromContext(ctx context.Context) (accountID, email string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	accountID, ok := claims["account_id"].(string)
	if !ok || accountID == "" {
		return "", "", fmt.Errorf("account_id claim is missing or invalid")
	}

	email, _ = claims["email"].(string)

	return accountID, email, nil
}

type PayrollHandler interface {
	GenerateBatch(w http.ResponseWriter, r *http.Request)
	GetEmployeeRecord(w http.ResponseWriter, r *http.Request)
	GetSchedule(w http.ResponseWriter, r *http.Request)
	ListRecords(w http.ResponseWriter, r *http.Request)
	UpdateScheduleStatus(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService      payroll.PayrollService
	subscriptionService subscription.SubscriptionService
}

func NewPayrollHandler(payrollService payroll.PayrollService, subscriptionService subscription.SubscriptionService) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService:      payrollService,
		subscriptionService: subscriptionService,
	}
}

func (h *payrollHandlerImpl) GenerateBatch(w http.ResponseWriter, r *http.Request) {
	accountID, _, err := getClaimsFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Invalid or missing token")
		return
	}
	if err := h.subscriptionService.RequireFeature(r.Context(), accountID, subscription.FeaturePayrollBatch); err != nil {
		response.HandleError(w, err)
		return
	}

	var req payroll.GenerateBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.GenerateBatch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll batch generated", result)
}

func (h *payrollHandlerImpl) GetEmployeeRecord(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		response.BadRequest(w, "month query parameter must be a number", nil)
		return
	}
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.BadRequest(w, "year query parameter must be a number", nil)
		return
	}

	result, err := h.payrollService.GetEmployeeRecord(r.Context(), employeeID, month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) GetSchedule(w http.ResponseWriter, r *http.Request) {
	entityID, entityType, month, year, err := periodParams(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	result, err := h.payrollService.GetSchedule(r.Context(), entityID, entityType, month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListRecords(w http.ResponseWriter, r *http.Request) {
	entityID, entityType, month, year, err := periodParams(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	result, err := h.payrollService.ListRecords(r.Context(), entityID, entityType, month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) UpdateScheduleStatus(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdateScheduleStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ScheduleID = chi.URLParam(r, "scheduleID")

	result, err := h.payrollService.EnsureScheduleStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func periodParams(r *http.Request) (entityID string, entityType employee.EntityType, month, year int, err error) {
	entityID = r.URL.Query().Get("entity_id")
	if entityID == "" {
		return "", "", 0, 0, fmt.Errorf("entity_id query parameter is required")
	}

	entityType = employee.EntityType(r.URL.Query().Get("entity_type"))
	if !entityType.Valid() {
		return "", "", 0, 0, fmt.Errorf("entity_type must be 'company' or 'business'")
	}

	month, err = strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		return "", "", 0, 0, fmt.Errorf("month query parameter must be a number")
	}
	year, err = strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		return "", "", 0, 0, fmt.Errorf("year query parameter must be a number")
	}

	return entityID, entityType, month, year, nil
}
