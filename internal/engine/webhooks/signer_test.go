package webhooks

import (
	"testing"
)

func TestSign_KnownVectors(t *testing.T) {
	vectors := map[string]struct {
		secret, payload, want string
	}{
		"openssl":     {"secret", "payload", "uC/LeRrOxXhZuYm0MKgmSIzi5Hn9+SMmvQoug3WkK6Q="},
		"empty array": {"whsec_test", "[]", "1euz2yukJsDAarIKPxEG6SeuGguA7gB7kSR0JHEwvTs="},
	}

	for name, v := range vectors {
		if got := Sign(v.secret, []byte(v.payload)); got != v.want {
			t.Errorf("%s: Sign(%q, %q) = %s, want %s", name, v.secret, v.payload, got, v.want)
		}
	}
}

func TestSign_Deterministic(t *testing.T) {
	payload := []byte(`[{"transaction_id":"T1174265"}]`)

	if Sign("whsec_test", payload) != Sign("whsec_test", payload) {
		t.Error("Sign() is not deterministic")
	}
	if Sign("whsec_test", payload) == Sign("whsec_other", payload) {
		t.Error("different secrets produced the same signature")
	}
}

func TestVerify(t *testing.T) {
	payload := []byte(`[{"id":"9593"}]`)
	sig := Sign("whsec_test", payload)

	tests := []struct {
		name      string
		secret    string
		payload   []byte
		signature string
		want      bool
	}{
		{"match", "whsec_test", payload, sig, true},
		{"wrong secret", "whsec_nope", payload, sig, false},
		{"tampered body", "whsec_test", []byte(`[{"id":"9594"}]`), sig, false},
		{"hex instead of base64", "whsec_test", payload, "eb22adbdbafb33f08721d0991545b2aa7d45b5f95902290a38ed5602650ac41d", false},
		{"empty signature", "whsec_test", payload, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Verify(tt.secret, tt.payload, tt.signature); got != tt.want {
				t.Errorf("Verify() = %v, want %v", got, tt.want)
			}
		})
	}
}
