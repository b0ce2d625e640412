package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/taxpadi/taxpadi-backend-go/internal/domain/subscription"
	"github.com/taxpadi/taxpadi-backend-go/internal/handler/http/response"
	"github.com/taxpadi/taxpadi-backend-go/internal/pkg/paystack"
)

type SubscriptionHandler interface {
	GetMySubscription(w http.ResponseWriter, r *http.Request)
	ListPlans(w http.ResponseWriter, r *http.Request)
	PreviewUpgrade(w http.ResponseWriter, r *http.Request)
	InitiateUpgrade(w http.ResponseWriter, r *http.Request)
	HandleWebhook(w http.ResponseWriter, r *http.Request)
}

type subscriptionHandlerImpl struct {
	subscriptionService subscription.SubscriptionService
	webhookVerifier     *paystack.WebhookVerifier
}

func NewSubscriptionHandler(
	subscriptionService subscription.SubscriptionService,
	webhookVerifier *paystack.WebhookVerifier,
) SubscriptionHandler {
	return &subscriptionHandlerImpl{
		subscriptionService: subscriptionService,
		webhookVerifier:     webhookVerifier,
	}
}

func (h *subscriptionHandlerImpl) GetMySubscription(w http.ResponseWriter, r *http.Request) {
	accountID, _, err := getClaimsFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.subscriptionService.GetMySubscription(r.Context(), accountID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *subscriptionHandlerImpl) ListPlans(w http.ResponseWriter, r *http.Request) {
	result, err := h.subscriptionService.ListPlans(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *subscriptionHandlerImpl) PreviewUpgrade(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeUpgradeRequest(w, r)
	if !ok {
		return
	}

	result, err := h.subscriptionService.PreviewUpgrade(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *subscriptionHandlerImpl) InitiateUpgrade(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeUpgradeRequest(w, r)
	if !ok {
		return
	}

	result, err := h.subscriptionService.InitiateUpgrade(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Upgrade payment initialized", result)
}

// HandleWebhook receives gateway charge events. The signature covers the
// raw body, so the body is read before decoding.
func (h *subscriptionHandlerImpl) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		response.BadRequest(w, "Failed to read request body", nil)
		return
	}

	signature := r.Header.Get("x-paystack-signature")
	if !h.webhookVerifier.VerifySignature(body, signature) {
		response.HandleError(w, subscription.ErrInvalidWebhookSignature)
		return
	}

	var payload subscription.WebhookPayload
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&payload); err != nil {
		response.BadRequest(w, "Invalid webhook payload", nil)
		return
	}

	if err := h.subscriptionService.HandleWebhook(r.Context(), payload); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Webhook processed", nil)
}

func (h *subscriptionHandlerImpl) decodeUpgradeRequest(w http.ResponseWriter, r *http.Request) (subscription.UpgradeRequest, bool) {
	accountID, email, err := getClaimsFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return subscription.UpgradeRequest{}, false
	}

	var req subscription.UpgradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return subscription.UpgradeRequest{}, false
	}
	req.AccountID = accountID
	req.Email = email

	return req, true
}
