package slack

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

const testSecret = "8f742231b10e8888abcd99yyyzzz85a5"

func sign(secret, ts string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "v0:%s:%s", ts, body)
	return "v0=" + hex.EncodeToString(mac.Sum(nil))
}

func TestCheckRequest(t *testing.T) {
	body := []byte("token=xyz&channel_id=C1")
	now := strconv.FormatInt(time.Now().Unix(), 10)
	stale := strconv.FormatInt(time.Now().Add(-301*time.Second).Unix(), 10)

	tests := []struct {
		name      string
		secret    string
		timestamp string
		signature string
		want      int
	}{
		{
			name:      "valid",
			secret:    testSecret,
			timestamp: now,
			signature: sign(testSecret, now, body),
			want:      http.StatusOK,
		},
		{
			name:      "missing_timestamp",
			secret:    testSecret,
			signature: sign(testSecret, "", body),
			want:      http.StatusBadRequest,
		},
		{
			name:      "non_numeric_timestamp",
			secret:    testSecret,
			timestamp: "yesterday",
			signature: sign(testSecret, "yesterday", body),
			want:      http.StatusBadRequest,
		},
		{
			name:      "stale_timestamp",
			secret:    testSecret,
			timestamp: stale,
			signature: sign(testSecret, stale, body),
			want:      http.StatusBadRequest,
		},
		{
			name:      "missing_signature",
			secret:    testSecret,
			timestamp: now,
			want:      http.StatusBadRequest,
		},
		{
			name:      "altered_signature",
			secret:    testSecret,
			timestamp: now,
			signature: sign(testSecret, now, body)[:66] + "x",
			want:      http.StatusUnauthorized,
		},
		{
			name:      "wrong_secret",
			secret:    testSecret,
			timestamp: now,
			signature: sign("some-other-secret", now, body),
			want:      http.StatusUnauthorized,
		},
		{
			name:      "unconfigured_secret",
			timestamp: now,
			signature: sign(testSecret, now, body),
			want:      http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			if tt.timestamp != "" {
				h.Set(timestampHeader, tt.timestamp)
			}
			if tt.signature != "" {
				h.Set(signatureHeader, tt.signature)
			}

			if got := CheckRequest(zerolog.Nop(), tt.secret, h, body); got != tt.want {
				t.Errorf("CheckRequest() = %d, want %d", got, tt.want)
			}
		})
	}
}

// A signature over one body must not validate another body, even with
// fresh headers: the body is part of the signed base string.
func TestCheckRequestBodyMismatch(t *testing.T) {
	now := strconv.FormatInt(time.Now().Unix(), 10)

	h := http.Header{}
	h.Set(timestampHeader, now)
	h.Set(signatureHeader, sign(testSecret, now, []byte("original body")))

	if got := CheckRequest(zerolog.Nop(), testSecret, h, []byte("tampered body")); got != http.StatusUnauthorized {
		t.Errorf("CheckRequest() = %d, want %d", got, http.StatusUnauthorized)
	}
}
