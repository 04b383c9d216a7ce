// Package grantlookup resuelve grants por access token.
//
// Lookups concurrentes por el mismo access token se colapsan en uno solo
// (singleflight). No cachea resultados: un grant borrado deja de resolver
// en el momento.
package grantlookup

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/dropDatabas3/littlejohn/internal/domain/repository"
)

// Resolution es el resultado de resolver un access token.
type Resolution struct {
	Token *repository.Token
	User  *repository.User // nil si el grant no tiene usuario asociado
}

type Manager struct {
	tokens repository.TokenRepository
	users  repository.UserRepository
	sf     singleflight.Group
}

func New(tokens repository.TokenRepository, users repository.UserRepository) *Manager {
	return &Manager{tokens: tokens, users: users}
}

// Resolve busca el grant por access token y carga su usuario.
// Retorna repository.ErrNotFound si el token no existe.
func (m *Manager) Resolve(ctx context.Context, accessToken string) (*Resolution, error) {
	v, err, _ := m.sf.Do(accessToken, func() (interface{}, error) {
		t, err := m.tokens.GetByAccessToken(ctx, accessToken)
		if err != nil {
			return nil, err
		}
		res := &Resolution{Token: t}
		if t.UserID != "" {
			u, err := m.users.GetByID(ctx, t.UserID)
			if err != nil && !repository.IsNotFound(err) {
				return nil, err
			}
			if err == nil {
				res.User = u
			}
		}
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Resolution), nil
}
