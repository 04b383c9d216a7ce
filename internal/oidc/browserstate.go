package oidc

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
)

// BrowserState deriva el valor opaco que usan los endpoints de session
// management para detectar cambios de sesión sin exponer el identificador.
//
// Con sesión presente gana la session key; sin sesión se usa la clave
// estática configurada; sin ninguna de las dos no hay valor posible.
func (p *Provider) BrowserState(r *http.Request) (string, error) {
	if key := p.sessionKey(r); key != "" {
		return hashBrowserState(key), nil
	}
	if k := p.cfg.OIDC.UnauthenticatedSessionManagementKey; k != "" {
		return hashBrowserState(k), nil
	}
	return "", ErrBrowserStateNotAvailable
}

// sessionKey lee el identificador de sesión que viaja en la cookie.
func (p *Provider) sessionKey(r *http.Request) string {
	if r == nil {
		return ""
	}
	name := p.cfg.Session.CookieName
	if name == "" {
		name = "sid"
	}
	c, err := r.Cookie(name)
	if err != nil || c == nil {
		return ""
	}
	return c.Value
}

// hashBrowserState: SHA-224 en hex minúscula (56 chars), sin salt.
// Determinista entre llamadas y procesos.
func hashBrowserState(input string) string {
	sum := sha256.Sum224([]byte(input))
	return hex.EncodeToString(sum[:])
}
