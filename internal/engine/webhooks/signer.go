package webhooks

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// SignatureHeader carries Sign(secret, body) on every delivery.
const SignatureHeader = "X-vtypeio-Hmac-SHA256"

// Sign returns the base64 (standard alphabet, padded) HMAC-SHA256 of payload
// keyed by secret.
func Sign(secret string, payload []byte) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(payload)
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// Verify recomputes the signature and compares in constant time.
func Verify(secret string, payload []byte, signature string) bool {
	expected := Sign(secret, payload)
	return hmac.Equal([]byte(expected), []byte(signature))
}
