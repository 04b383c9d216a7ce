// Package oidc implementa el núcleo de emisión del provider: resolución de
// issuer, armado del claim set del id_token, creación de grants, serialización
// storage-safe de claims y browser state para session management.
//
// Todas las operaciones son puras sobre sus argumentos más la config
// inyectada (solo lectura), sin estado mutable compartido: un Provider es
// seguro para uso concurrente desde múltiples requests.
package oidc

import (
	"github.com/dropDatabas3/littlejohn/internal/claims"
	"github.com/dropDatabas3/littlejohn/internal/config"
)

// Provider es el núcleo de emisión OIDC.
type Provider struct {
	cfg *config.Config
	// extra se resuelve una sola vez en NewProvider; nil si no hay provider
	// configurado.
	extra claims.ScopeClaims
}

// NewProvider construye el Provider sobre una config ya cargada.
// Si oidc.extra_scope_claims referencia un provider no registrado, falla acá:
// nunca se emiten claim sets parciales por una referencia rota en runtime.
func NewProvider(cfg *config.Config) (*Provider, error) {
	p := &Provider{cfg: cfg}
	if name := cfg.OIDC.ExtraScopeClaims; name != "" {
		sc, err := claims.Resolve(name)
		if err != nil {
			return nil, err
		}
		p.extra = sc
	}
	return p, nil
}
