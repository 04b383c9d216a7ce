package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/dropDatabas3/littlejohn/internal/app"
	httpx "github.com/dropDatabas3/littlejohn/internal/http"
	"github.com/dropDatabas3/littlejohn/internal/observability/logger"
)

// NewUserInfoHandler resuelve el access token opaco del Bearer y responde
// sub + claims por scope del grant.
func NewUserInfoHandler(c *app.Container) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodPost {
			httpx.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "solo GET/POST", 1000)
			return
		}
		log := logger.From(r.Context()).With(
			logger.Layer("handler"),
			logger.Component("userinfo"),
		)

		ah := strings.TrimSpace(r.Header.Get("Authorization"))
		if ah == "" || !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
			w.Header().Set("WWW-Authenticate", `Bearer realm="userinfo"`)
			httpx.ObserveUserinfo("unauthorized")
			httpx.WriteError(w, http.StatusUnauthorized, "missing_bearer", "falta Authorization: Bearer <token>", 2301)
			return
		}
		raw := strings.TrimSpace(ah[len("Bearer "):])

		res, err := c.Grants.Resolve(r.Context(), raw)
		if err != nil {
			log.Debug("access token no resuelve", logger.Err(err))
			w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
			httpx.ObserveUserinfo("unauthorized")
			httpx.WriteError(w, http.StatusUnauthorized, "invalid_token", "token inválido", 2302)
			return
		}
		if res.Token.Expired(time.Now()) {
			w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
			httpx.ObserveUserinfo("unauthorized")
			httpx.WriteError(w, http.StatusUnauthorized, "invalid_token", "token expirado", 2303)
			return
		}
		if res.User == nil {
			w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
			httpx.ObserveUserinfo("unauthorized")
			httpx.WriteError(w, http.StatusUnauthorized, "invalid_token", "grant sin usuario", 2304)
			return
		}

		resp := c.Provider.UserClaims(r.Context(), res.Token, res.User)
		httpx.ObserveUserinfo("ok")
		httpx.WriteJSON(w, http.StatusOK, resp)
	}
}
