package handlers

import (
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/dropDatabas3/littlejohn/internal/app"
	"github.com/dropDatabas3/littlejohn/internal/audit"
	httpx "github.com/dropDatabas3/littlejohn/internal/http"
	"github.com/dropDatabas3/littlejohn/internal/http/helpers"
	jwtx "github.com/dropDatabas3/littlejohn/internal/jwt"
	"github.com/dropDatabas3/littlejohn/internal/observability/logger"
)

// NewEndSessionHandler implementa RP-initiated logout.
//
// Flujo: id_token_hint (obligatorio) -> aud sin verificar -> client registrado
// -> post_logout_redirect_uri contra la registración -> cerrar sesión ->
// 302 a la URI (state en la query) o 204 si no vino URI.
func NewEndSessionHandler(c *app.Container) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodPost {
			httpx.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "solo GET/POST", 1000)
			return
		}
		log := logger.From(r.Context()).With(
			logger.Layer("handler"),
			logger.Component("end_session"),
		)

		// FormValue cubre query (GET) y form body (POST)
		hint := r.FormValue("id_token_hint")
		redirectURI := r.FormValue("post_logout_redirect_uri")
		state := r.FormValue("state")

		if hint == "" {
			httpx.ObserveEndSession("rejected")
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "falta id_token_hint", 2401)
			return
		}

		clientID, err := jwtx.UnverifiedClientID(hint)
		if err != nil {
			log.Debug("id_token_hint inválido", logger.Err(err))
			httpx.ObserveEndSession("rejected")
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "id_token_hint inválido", 2402)
			return
		}

		cl, err := c.Store.Clients().Get(r.Context(), clientID)
		if err != nil {
			log.Debug("client desconocido", logger.ClientID(clientID), logger.Err(err))
			httpx.ObserveEndSession("rejected")
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "client desconocido", 2403)
			return
		}

		// URI no registrada no redirige: evita open redirect
		if redirectURI != "" && !cl.AllowsPostLogoutRedirect(redirectURI) {
			log.Debug("post_logout_redirect_uri no registrada", logger.ClientID(clientID))
			httpx.ObserveEndSession("rejected")
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "post_logout_redirect_uri no registrada", 2404)
			return
		}

		// Cerrar la sesión de navegador si la hay
		auditFields := []zap.Field{logger.ClientID(clientID)}
		if ck, err := r.Cookie(c.Cfg.Session.CookieName); err == nil && ck.Value != "" {
			if sess, ok := c.Sessions.Get(ck.Value); ok {
				auditFields = append(auditFields, logger.UserID(sess.UserID))
			}
			c.Sessions.Delete(ck.Value)
		}
		http.SetCookie(w, helpers.BuildDeletionCookie(
			c.Cfg.Session.CookieName, c.Cfg.Session.Domain,
			c.Cfg.Session.SameSite, c.Cfg.Session.Secure,
		))
		audit.Event(r.Context(), "session.logout", auditFields...)

		if redirectURI == "" {
			httpx.ObserveEndSession("cleared")
			w.WriteHeader(http.StatusNoContent)
			return
		}

		target := redirectURI
		if state != "" {
			if u, err := url.Parse(redirectURI); err == nil {
				q := u.Query()
				q.Set("state", state)
				u.RawQuery = q.Encode()
				target = u.String()
			}
		}
		log.Info("logout", logger.ClientID(clientID))
		httpx.ObserveEndSession("redirected")
		http.Redirect(w, r, target, http.StatusFound)
	}
}
