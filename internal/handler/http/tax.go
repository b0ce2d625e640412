package http

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/taxpadi/taxpadi-backend-go/internal/domain/tax"
	"github.com/taxpadi/taxpadi-backend-go/internal/handler/http/response"
)

type TaxHandler interface {
	ComputePAYE(w http.ResponseWriter, r *http.Request)
	ClassifyCIT(w http.ResponseWriter, r *http.Request)
	CheckVAT(w http.ResponseWriter, r *http.Request)
}

type taxHandlerImpl struct {
	calc tax.Calculator
}

func NewTaxHandler(calc tax.Calculator) TaxHandler {
	return &taxHandlerImpl{calc: calc}
}

// ComputePAYE runs a standalone PAYE computation without touching any
// stored record. Used by calculators and what-if tooling.
func (h *taxHandlerImpl) ComputePAYE(w http.ResponseWriter, r *http.Request) {
	var req tax.ComputePAYERequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.calc.ComputePAYE(req.ToInput())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ClassifyCIT is the stateless classification preview; the persisted
// variant lives on the company routes.
func (h *taxHandlerImpl) ClassifyCIT(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Turnover decimal.Decimal `json:"turnover"`
		TaxYear  int             `json:"tax_year"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if req.Turnover.IsNegative() {
		response.BadRequest(w, "turnover must be non-negative", nil)
		return
	}

	result, err := h.calc.ClassifyCIT(req.Turnover, req.TaxYear)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *taxHandlerImpl) CheckVAT(w http.ResponseWriter, r *http.Request) {
	turnoverParam := r.URL.Query().Get("turnover")
	turnover, err := decimal.NewFromString(turnoverParam)
	if err != nil {
		response.BadRequest(w, "turnover query parameter must be a number", nil)
		return
	}
	if turnover.IsNegative() {
		response.BadRequest(w, "turnover must be non-negative", nil)
		return
	}

	response.Success(w, h.calc.CheckVATObligation(turnover))
}
