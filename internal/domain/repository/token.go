package repository

import (
	"context"
	"time"
)

// Token representa un grant emitido: access/refresh tokens opacos más el
// claim set del id_token tal como quedó persistido.
type Token struct {
	ID           string
	UserID       string
	ClientID     string
	Scope        []string // orden del request; puede traer repetidos
	AccessToken  string
	RefreshToken string
	CreatedAt    time.Time
	ExpiresAt    time.Time
	// IDToken es el claim set persistido (ya storage-safe al guardar).
	IDToken map[string]any
}

// Expired indica si el grant ya venció en el instante dado.
func (t *Token) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// HasScope indica si el grant incluye el scope exacto.
func (t *Token) HasScope(scope string) bool {
	for _, s := range t.Scope {
		if s == scope {
			return true
		}
	}
	return false
}

// TokenRepository define operaciones sobre grants.
type TokenRepository interface {
	// Save inserta o actualiza el grant. El claim set IDToken se vuelve
	// storage-safe antes de escribir; el valor en memoria queda igual que
	// lo que se leería de vuelta.
	Save(ctx context.Context, t *Token) error

	// GetByID busca un grant por ID.
	// Retorna ErrNotFound si no existe.
	GetByID(ctx context.Context, id string) (*Token, error)

	// GetByAccessToken busca un grant por su access token opaco.
	// Retorna ErrNotFound si no existe.
	GetByAccessToken(ctx context.Context, accessToken string) (*Token, error)

	// Delete elimina un grant por ID.
	Delete(ctx context.Context, id string) error

	// DeleteExpired purga grants vencidos. Retorna cuántos eliminó.
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}
