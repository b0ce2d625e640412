package paystack

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
)

// WebhookVerifier handles webhook signature verification
type WebhookVerifier struct {
	secretKey string
}

// NewWebhookVerifier creates a new webhook verifier
func NewWebhookVerifier(secretKey string) *WebhookVerifier {
	return &WebhookVerifier{secretKey: secretKey}
}

// VerifySignature checks the x-paystack-signature header: HMAC-SHA512 of
// the raw request body keyed with the account's secret key.
func (v *WebhookVerifier) VerifySignature(payload []byte, signature string) bool {
	mac := hmac.New(sha512.New, []byte(v.secretKey))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// WebhookEvent represents the type of webhook event
type WebhookEvent string

const (
	WebhookEventChargeSuccess WebhookEvent = "charge.success"
	WebhookEventChargeFailed  WebhookEvent = "charge.failed"
)
