package oidc

import (
	"context"
	"time"

	"github.com/dropDatabas3/littlejohn/internal/claims"
	"github.com/dropDatabas3/littlejohn/internal/domain/repository"
)

// CreateIDToken arma el claim set del id_token para un grant.
//
// iat se captura al entrar, antes de cualquier otro trabajo; exp se deriva de
// ese mismo instante. Sin efectos colaterales: el caller decide persistencia.
func (p *Provider) CreateIDToken(ctx context.Context, grant *repository.Token, user *repository.User, aud string) (map[string]any, error) {
	// 1) iat primero; exp = iat + vida configurada
	iat := time.Now().Unix()
	exp := iat + int64(p.cfg.OIDC.IDToken.Expire)

	// 2) issuer solo desde config en este camino (sin request)
	iss, err := p.Issuer("", nil)
	if err != nil {
		return nil, err
	}

	dic := map[string]any{
		"iss": iss,
		"sub": user.ID,
		"aud": aud,
		"exp": exp,
		"iat": iat,
	}

	// 3) auth_time solo si el usuario tiene last_login; nunca null
	if user.LastLogin != nil {
		dic["auth_time"] = user.LastLogin.Unix()
	}

	// 4) claims por scope solo con include_claims habilitado:
	//    standard primero, extension después (last write wins entre ellos,
	//    los registrados nunca se pisan)
	if p.cfg.OIDC.IDToken.IncludeClaims {
		claims.Merge(dic, claims.Standard(user, grant.Scope))
		if p.extra != nil {
			claims.Merge(dic, p.extra.Compute(ctx, grant, user, grant.Scope))
		}
	}

	return dic, nil
}
