package oidc

import (
	"errors"

	"github.com/dropDatabas3/littlejohn/internal/claims"
)

var (
	// ErrIssuerNotConfigured indica que no hay fuente para el issuer:
	// ni override explícito, ni site.url, ni request del cual inferirlo.
	ErrIssuerNotConfigured = errors.New("oidc: issuer not configured and no request to derive it from")

	// ErrCyclicClaims indica un grafo cíclico en el claim set al serializar.
	// Defensivo: no se espera de fuentes de claims normales.
	ErrCyclicClaims = errors.New("oidc: cyclic value graph in claim set")

	// ErrBrowserStateNotAvailable indica que no hay ni session key ni clave
	// estática configurada para derivar el browser state.
	ErrBrowserStateNotAvailable = errors.New("oidc: no session key and no unauthenticated session management key")
)

// IsConfigurationError agrupa los errores causados por configuración
// incompleta o rota (issuer sin fuente, provider de claims no registrado).
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrIssuerNotConfigured) || errors.Is(err, claims.ErrProviderNotFound)
}

// IsNotAvailable verifica si el error es ErrBrowserStateNotAvailable.
func IsNotAvailable(err error) bool {
	return errors.Is(err, ErrBrowserStateNotAvailable)
}
