package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taxpadi/taxpadi-backend-go/internal/domain/company"
	"github.com/taxpadi/taxpadi-backend-go/internal/domain/subscription"
	"github.com/taxpadi/taxpadi-backend-go/internal/handler/http/response"
)

type CompanyHandler interface {
	Classify(w http.ResponseWriter, r *http.Request)
	GetTaxProfile(w http.ResponseWriter, r *http.Request)
}

type companyHandlerImpl struct {
	taxProfileService   company.TaxProfileService
	subscriptionService subscription.SubscriptionService
}

func NewCompanyHandler(taxProfileService company.TaxProfileService, subscriptionService subscription.SubscriptionService) CompanyHandler {
	return &companyHandlerImpl{
		taxProfileService:   taxProfileService,
		subscriptionService: subscriptionService,
	}
}

func (h *companyHandlerImpl) Classify(w http.ResponseWriter, r *http.Request) {
	accountID, _, err := getClaimsFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Invalid or missing token")
		return
	}
	if err := h.subscriptionService.RequireFeature(r.Context(), accountID, subscription.FeatureCompanyTax); err != nil {
		response.HandleError(w, err)
		return
	}

	var req company.ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.CompanyID = chi.URLParam(r, "companyID")

	result, err := h.taxProfileService.Classify(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *companyHandlerImpl) GetTaxProfile(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")
	taxYear, err := strconv.Atoi(chi.URLParam(r, "taxYear"))
	if err != nil {
		response.BadRequest(w, "taxYear path parameter must be a number", nil)
		return
	}

	result, err := h.taxProfileService.GetProfile(r.Context(), companyID, taxYear)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
