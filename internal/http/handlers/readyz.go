package handlers

import (
	"net/http"
	"os"
	"time"

	"github.com/dropDatabas3/littlejohn/internal/app"
	httpx "github.com/dropDatabas3/littlejohn/internal/http"
	"github.com/dropDatabas3/littlejohn/internal/observability/logger"
)

func NewReadyzHandler(c *app.Container) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if v := os.Getenv("SERVICE_VERSION"); v != "" {
			w.Header().Set("X-Service-Version", v)
		}
		if c != nil && c.Signer != nil && c.Signer.Keys != nil {
			w.Header().Set("X-Signing-KID", c.Signer.Keys.KID)
		}

		// 1) Storage
		if err := c.Store.Ping(r.Context()); err != nil {
			logger.From(r.Context()).Error("storage unavailable", logger.Err(err))
			httpx.WriteError(w, http.StatusServiceUnavailable, "storage_unavailable", "storage unavailable", 2001)
			return
		}

		// 2) Self-check EdDSA: firmar y verificar un token efímero en memoria
		now := time.Now().UTC()
		signed, err := c.Signer.Sign(map[string]any{
			"iss": "selfcheck",
			"sub": "selfcheck",
			"aud": "health",
			"iat": now.Unix(),
			"nbf": now.Unix(),
			"exp": now.Add(60 * time.Second).Unix(),
		})
		if err != nil {
			httpx.WriteError(w, http.StatusServiceUnavailable, "sign_failed", "no se pudo firmar self-check", 2004)
			return
		}
		cl, err := c.Signer.Parse(signed, "selfcheck")
		if err != nil {
			httpx.WriteError(w, http.StatusServiceUnavailable, "verify_failed", "self-check: verificación falló", 2005)
			return
		}
		if s, _ := cl["sub"].(string); s != "selfcheck" {
			httpx.WriteError(w, http.StatusServiceUnavailable, "verify_failed", "self-check: sub inesperado", 2006)
			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	}
}
