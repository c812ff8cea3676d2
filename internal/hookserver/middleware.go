package hookserver

import (
	"net/http"
	"time"

	"github.com/dailybot/dailybot-cli/internal/debug"
	"github.com/dailybot/dailybot-cli/pkg/webhook"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		debug.LogKV("hookserver", "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", recorder.status,
			"duration_ms", time.Since(started).Milliseconds(),
		)
	})
}

// secretMiddleware rejects deliveries whose X-Webhook-Secret header does
// not match the registered secret. An empty secret disables the check.
// The health endpoint stays open so probes work without the secret.
func secretMiddleware(secret string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if secret == "" || r.URL.Path == "/healthz" {
			next.ServeHTTP(w, r)
			return
		}

		if !webhook.VerifySecret(secret, r.Header.Get(webhook.SecretHeader)) {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		next.ServeHTTP(w, r)
	})
}
