package oidc

import (
	"net/http"
	"strings"
)

// OpenIDPath es el segmento fijo que cuelga de la base del issuer.
const OpenIDPath = "/openid"

// Issuer resuelve el issuer canónico del provider.
// Precedencia: siteURL explícito > site.url de config > scheme+host del
// request. El resultado termina en /openid sin duplicar slashes.
func (p *Provider) Issuer(siteURL string, r *http.Request) (string, error) {
	base := strings.TrimSpace(siteURL)
	if base == "" {
		base = strings.TrimSpace(p.cfg.Site.URL)
	}
	if base == "" {
		if r == nil {
			return "", ErrIssuerNotConfigured
		}
		base = requestScheme(r) + "://" + requestHost(r)
	}
	return strings.TrimRight(base, "/") + OpenIDPath, nil
}

// requestScheme devuelve el scheme efectivo, respetando X-Forwarded-Proto
// cuando hay proxy adelante.
func requestScheme(r *http.Request) string {
	if v := r.Header.Get("X-Forwarded-Proto"); v != "" {
		if i := strings.IndexByte(v, ','); i >= 0 {
			v = v[:i]
		}
		return strings.ToLower(strings.TrimSpace(v))
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

// requestHost devuelve host[:puerto] efectivo, respetando X-Forwarded-Host.
func requestHost(r *http.Request) string {
	if v := r.Header.Get("X-Forwarded-Host"); v != "" {
		if i := strings.IndexByte(v, ','); i >= 0 {
			v = v[:i]
		}
		return strings.TrimSpace(v)
	}
	return r.Host
}
