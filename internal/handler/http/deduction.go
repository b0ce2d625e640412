package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taxpadi/taxpadi-backend-go/internal/domain/deduction"
	"github.com/taxpadi/taxpadi-backend-go/internal/handler/http/response"
)

type DeductionsHandler interface {
	Upsert(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type deductionsHandlerImpl struct {
	deductionsService deduction.DeductionsService
}

func NewDeductionsHandler(deductionsService deduction.DeductionsService) DeductionsHandler {
	return &deductionsHandlerImpl{deductionsService: deductionsService}
}

func (h *deductionsHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	accountID, _, err := getClaimsFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req deduction.UpsertDeductionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.AccountID = accountID

	result, err := h.deductionsService.Upsert(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *deductionsHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	accountID, _, err := getClaimsFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	taxYear, err := yearParam(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	result, err := h.deductionsService.Get(r.Context(), accountID, taxYear)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *deductionsHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	accountID, _, err := getClaimsFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	taxYear, err := yearParam(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	if err := h.deductionsService.Delete(r.Context(), accountID, taxYear); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Deductions record deleted", nil)
}

func yearParam(r *http.Request) (int, error) {
	year, err := strconv.Atoi(chi.URLParam(r, "taxYear"))
	if err != nil {
		return 0, fmt.Errorf("taxYear path parameter must be a number")
	}
	return year, nil
}
