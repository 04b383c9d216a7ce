// Package validation reúne las validaciones de registración: nombres de
// scope y redirect URIs de clients. El núcleo de emisión no valida nada de
// esto; el scope de un grant llega tal cual lo aprobó el flujo upstream.
package validation

import (
	"net/url"
	"regexp"
)

// Reglas de nombre de scope:
//   - minúsculas, empieza y termina en [a-z0-9]
//   - en el medio admite [a-z0-9:_.-]
//   - largo 1..64, sin espacios ni punto y coma
//
// Válidos: profile, profile:read, a_b-c.d:scope2. Inválidos: BAD, :lead, trail:
var scopeNameRe = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9:_\.-]{0,62}[a-z0-9])?$`)

// ValidScopeName indica si el nombre cumple el patrón permitido.
func ValidScopeName(name string) bool {
	return scopeNameRe.MatchString(name)
}

// InvalidScopes devuelve los nombres que no pasan ValidScopeName,
// en el orden en que aparecen. Lista vacía = todos válidos.
func InvalidScopes(scopes []string) []string {
	var bad []string
	for _, s := range scopes {
		if !ValidScopeName(s) {
			bad = append(bad, s)
		}
	}
	return bad
}

// ValidRedirectURI acepta solo URIs absolutas http/https sin fragmento,
// como exige la registración de clients (redirect y post-logout).
func ValidRedirectURI(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if u.Host == "" || u.Fragment != "" {
		return false
	}
	return true
}
