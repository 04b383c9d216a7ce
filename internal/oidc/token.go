package oidc

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dropDatabas3/littlejohn/internal/domain/repository"
)

// CreateToken crea un grant nuevo para el par user/client con el scope
// pedido. Los tokens opacos son uuid4 en hex; la vida la fija
// oidc.token.expire.
func (p *Provider) CreateToken(user *repository.User, client *repository.Client, scope []string) *repository.Token {
	now := time.Now().UTC()
	return &repository.Token{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		ClientID:     client.ID,
		Scope:        append([]string(nil), scope...),
		AccessToken:  opaqueToken(),
		RefreshToken: opaqueToken(),
		CreatedAt:    now,
		ExpiresAt:    now.Add(time.Duration(p.cfg.OIDC.Token.Expire) * time.Second),
	}
}

func opaqueToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
