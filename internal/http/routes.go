package http

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/littlejohn/internal/rate"
)

// RouterConfig agrupa los handlers que monta el router.
// Los handlers se construyen en el main y se pasan ya armados.
type RouterConfig struct {
	EndSession   stdhttp.Handler
	UserInfo     stdhttp.Handler
	BrowserState stdhttp.Handler
	Readyz       stdhttp.Handler
	Metrics      stdhttp.Handler // nil deshabilita /metrics

	Limiter            rate.Limiter // nil deshabilita rate limiting
	CORSAllowedOrigins []string
}

// NewRouter arma el router con la cadena estándar de middlewares.
func NewRouter(rc RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(WithRequestID)
	r.Use(WithRecover)
	r.Use(WithMetrics)
	r.Use(WithLogging)
	r.Use(WithRateLimit(rc.Limiter))
	r.Use(WithSecurityHeaders)
	if len(rc.CORSAllowedOrigins) > 0 {
		r.Use(WithCORS(rc.CORSAllowedOrigins))
	}

	// Health
	r.Get("/healthz", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
		w.WriteHeader(stdhttp.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(stdhttp.MethodGet, "/readyz", rc.Readyz)
	if rc.Metrics != nil {
		r.Method(stdhttp.MethodGet, "/metrics", rc.Metrics)
	}

	// Superficie OIDC de session management
	r.Route("/openid", func(r chi.Router) {
		r.Use(WithNoStore)
		r.Method(stdhttp.MethodGet, "/end-session", rc.EndSession)
		r.Method(stdhttp.MethodPost, "/end-session", rc.EndSession)
		r.Method(stdhttp.MethodGet, "/userinfo", rc.UserInfo)
		r.Method(stdhttp.MethodPost, "/userinfo", rc.UserInfo)
		r.Method(stdhttp.MethodGet, "/browser-state", rc.BrowserState)
	})

	return r
}
