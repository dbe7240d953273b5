package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"
	"os"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/tradescope/Trading-Journal-Backend/internal/api/response"
)

// timeTokenTTL bounds how long a generated time token stays valid.
// Replayed tokens older than this are rejected.
const timeTokenTTL = 5 * time.Minute

// APIKeyMiddleware guards internal endpoints with a shared API key and a
// short-lived time token. Callers send the key in X-API-Key and a fernet
// token generated from that key in X-Time-Token; the token binds the request
// to a time window so a captured header pair cannot be replayed later.
//
// The expected key is read from the INTERNAL_API_KEY environment variable on
// every request, so rotating the key does not require a restart.
func APIKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expectedKey := os.Getenv("INTERNAL_API_KEY")
		if expectedKey == "" {
			response.RespondError(w, http.StatusInternalServerError, "authentication unavailable", "Authentication not loaded")
			return
		}

		apiKey := r.Header.Get("X-API-Key")
		if apiKey == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing API key")
			return
		}

		if subtle.ConstantTimeCompare([]byte(apiKey), []byte(expectedKey)) != 1 {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Invalid API key")
			return
		}

		timeToken := r.Header.Get("X-Time-Token")
		if timeToken == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing Time token")
			return
		}

		key := deriveFernetKey(expectedKey)
		if fernet.VerifyAndDecrypt([]byte(timeToken), timeTokenTTL, []*fernet.Key{key}) == nil {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Time token is invalid or expired")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GenerateTimeToken creates a fernet time token bound to the given API key.
// The token embeds its issue timestamp and verifies only within timeTokenTTL.
func GenerateTimeToken(apiKey string) string {
	key := deriveFernetKey(apiKey)

	token, err := fernet.EncryptAndSign([]byte(time.Now().UTC().Format(time.RFC3339)), key)
	if err != nil {
		return ""
	}
	return string(token)
}

// deriveFernetKey turns the free-form API key into the 32-byte key fernet
// requires.
func deriveFernetKey(apiKey string) *fernet.Key {
	sum := sha256.Sum256([]byte(apiKey))
	key := fernet.Key(sum)
	return &key
}
