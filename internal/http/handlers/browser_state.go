package handlers

import (
	"net/http"

	"github.com/dropDatabas3/littlejohn/internal/app"
	httpx "github.com/dropDatabas3/littlejohn/internal/http"
	"github.com/dropDatabas3/littlejohn/internal/oidc"
)

// NewBrowserStateHandler expone el browser state de session management.
// El consumidor (iframe del RP) vive fuera de este servicio.
func NewBrowserStateHandler(c *app.Container) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			httpx.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "solo GET", 1000)
			return
		}

		bs, err := c.Provider.BrowserState(r)
		if err != nil {
			if oidc.IsNotAvailable(err) {
				httpx.WriteError(w, http.StatusNotFound, "not_available", "sin sesión ni clave configurada", 2501)
				return
			}
			httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "browser state", 1500)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"browser_state": bs})
	}
}
