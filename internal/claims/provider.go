// Package claims resuelve los claims derivados de scopes: los estándar
// (email, profile) leídos del perfil del usuario y los de providers
// registrados por nombre (extension claims).
package claims

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/dropDatabas3/littlejohn/internal/domain/repository"
)

// ErrProviderNotFound indica que la referencia configurada en
// oidc.extra_scope_claims no corresponde a ningún provider registrado.
var ErrProviderNotFound = errors.New("scope claims provider not registered")

// ScopeClaims calcula claims adicionales a partir del grant, el usuario y la
// lista de scopes. Una sola llamada por emisión; la implementación decide qué
// scopes reconoce.
type ScopeClaims interface {
	Compute(ctx context.Context, grant *repository.Token, user *repository.User, scopes []string) map[string]any
}

// Func adapta una función a ScopeClaims.
type Func func(ctx context.Context, grant *repository.Token, user *repository.User, scopes []string) map[string]any

// Compute implementa ScopeClaims.
func (f Func) Compute(ctx context.Context, grant *repository.Token, user *repository.User, scopes []string) map[string]any {
	return f(ctx, grant, user, scopes)
}

// ─── Registry Global ───

var (
	registryMu sync.RWMutex
	providers  = make(map[string]ScopeClaims)
)

// Register registra un provider bajo un nombre.
// Llamar en init() del paquete que lo implementa.
func Register(name string, p ScopeClaims) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := providers[name]; exists {
		panic(fmt.Sprintf("claims: provider %q already registered", name))
	}
	providers[name] = p
}

// Resolve busca un provider por nombre. Se invoca una sola vez, al construir
// el Provider OIDC: una referencia rota es error de configuración, no de runtime.
func Resolve(name string) (ScopeClaims, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	if p, ok := providers[name]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %q (registered: %v)", ErrProviderNotFound, name, registeredNames())
}

func registeredNames() []string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
