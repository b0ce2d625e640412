package paystack

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"testing"
)

func sign(key string, payload []byte) string {
	mac := hmac.New(sha512.New, []byte(key))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	v := NewWebhookVerifier("sk_test_secret")
	payload := []byte(`{"event":"charge.success","data":{"reference":"pay-1"}}`)

	if !v.VerifySignature(payload, sign("sk_test_secret", payload)) {
		t.Error("valid signature rejected")
	}
	if v.VerifySignature(payload, sign("sk_other_key", payload)) {
		t.Error("signature from wrong key accepted")
	}
	if v.VerifySignature([]byte(`tampered`), sign("sk_test_secret", payload)) {
		t.Error("signature over different payload accepted")
	}
	if v.VerifySignature(payload, "") {
		t.Error("empty signature accepted")
	}
}
