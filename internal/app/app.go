// Package app expone el contenedor DI simple que comparten los handlers.
package app

import (
	"github.com/dropDatabas3/littlejohn/internal/cache"
	"github.com/dropDatabas3/littlejohn/internal/config"
	"github.com/dropDatabas3/littlejohn/internal/infra/grantlookup"
	jwtx "github.com/dropDatabas3/littlejohn/internal/jwt"
	"github.com/dropDatabas3/littlejohn/internal/oidc"
	"github.com/dropDatabas3/littlejohn/internal/session"
	"github.com/dropDatabas3/littlejohn/internal/store"
)

// Container agrupa las dependencias ya construidas.
type Container struct {
	Cfg *config.Config

	// Provider arma claims, resuelve issuer y calcula browser state.
	Provider *oidc.Provider

	// Signer firma/verifica id_tokens (Ed25519).
	Signer *jwtx.Signer

	Store store.Connection
	Cache cache.Cache

	// Sessions maneja la sesión de navegador (cookie sid).
	Sessions *session.Store

	// Grants resuelve access tokens opacos con dedup.
	Grants *grantlookup.Manager
}
