package oidc

import (
	"context"

	"github.com/dropDatabas3/littlejohn/internal/claims"
	"github.com/dropDatabas3/littlejohn/internal/domain/repository"
)

// UserClaims computa la respuesta de userinfo para un grant: sub más los
// claims por scope (standard primero, extension después). No mira
// include_claims; ese flag gobierna únicamente el id_token.
func (p *Provider) UserClaims(ctx context.Context, grant *repository.Token, user *repository.User) map[string]any {
	out := map[string]any{"sub": user.ID}
	claims.Merge(out, claims.Standard(user, grant.Scope))
	if p.extra != nil {
		claims.Merge(out, p.extra.Compute(ctx, grant, user, grant.Scope))
	}
	return out
}
