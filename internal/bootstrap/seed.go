// Package bootstrap siembra los datos de demo para un entorno local:
// un client OIDC, un usuario y un grant de muestra ya persistido.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dropDatabas3/littlejohn/internal/app"
	"github.com/dropDatabas3/littlejohn/internal/audit"
	"github.com/dropDatabas3/littlejohn/internal/domain/repository"
	httpx "github.com/dropDatabas3/littlejohn/internal/http"
	"github.com/dropDatabas3/littlejohn/internal/observability/logger"
	"github.com/dropDatabas3/littlejohn/internal/util"
	"github.com/dropDatabas3/littlejohn/internal/validation"
)

const (
	// DemoClientID es el client_id que crea el seed.
	DemoClientID = "demo-web"

	// DemoUserEmail es el email del usuario de demo.
	DemoUserEmail = "ana@demo.local"
)

// EnsureDemo crea el client y usuario de demo si todavía no existen, y emite
// un grant de muestra con su id_token para poder probar /openid/userinfo de
// inmediato. Idempotente: si el client ya está registrado no toca nada y
// devuelve (nil, nil).
func EnsureDemo(ctx context.Context, c *app.Container) (*repository.Token, error) {
	// 1. Si el client demo ya existe, no hay nada que sembrar.
	if _, err := c.Store.Clients().Get(ctx, DemoClientID); err == nil {
		fmt.Println("✅ Seed: client demo ya registrado. Nada que hacer.")
		return nil, nil
	} else if !repository.IsNotFound(err) {
		return nil, fmt.Errorf("seed: verificando client demo: %w", err)
	}

	scopes := []string{"openid", "profile", "email"}
	if bad := validation.InvalidScopes(scopes); len(bad) > 0 {
		return nil, fmt.Errorf("seed: scopes inválidos: %v", bad)
	}

	redirects := []string{"http://localhost:3000/callback"}
	postLogout := []string{"http://localhost:3000/"}
	for _, u := range append(append([]string{}, redirects...), postLogout...) {
		if !validation.ValidRedirectURI(u) {
			return nil, fmt.Errorf("seed: redirect URI inválida: %q", u)
		}
	}

	// 2. Client confidential con secret bcrypt (SEED_CLIENT_SECRET lo pisa).
	secret := os.Getenv("SEED_CLIENT_SECRET")
	if secret == "" {
		secret = "demo-secret"
	}
	hash, err := repository.HashClientSecret(secret)
	if err != nil {
		return nil, fmt.Errorf("seed: hasheando secret: %w", err)
	}
	client := &repository.Client{
		ID:                     DemoClientID,
		Name:                   "Demo Web",
		Type:                   repository.ClientTypeConfidential,
		SecretHash:             hash,
		RedirectURIs:           redirects,
		PostLogoutRedirectURIs: postLogout,
		Scopes:                 scopes,
	}
	if err := c.Store.Clients().Create(ctx, client); err != nil {
		return nil, fmt.Errorf("seed: creando client: %w", err)
	}

	// 3. Usuario demo con login reciente, para que el id_token lleve auth_time.
	user, err := c.Store.Users().GetByEmail(ctx, DemoUserEmail)
	if repository.IsNotFound(err) {
		user, err = c.Store.Users().Create(ctx, repository.CreateUserInput{
			Email:         DemoUserEmail,
			EmailVerified: true,
			Name:          "Ana Demo",
			GivenName:     "Ana",
			FamilyName:    "Demo",
			Nickname:      "ana",
		})
	}
	if err != nil {
		return nil, fmt.Errorf("seed: creando usuario: %w", err)
	}
	if err := c.Store.Users().TouchLastLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("seed: actualizando last_login: %w", err)
	}
	// Releer para que el grant vea el last_login recién escrito.
	user, err = c.Store.Users().GetByID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("seed: releyendo usuario: %w", err)
	}

	// 4. Grant de muestra con su id_token persistido.
	grant := c.Provider.CreateToken(user, client, scopes)
	idToken, err := c.Provider.CreateIDToken(ctx, grant, user, client.ID)
	if err != nil {
		return nil, fmt.Errorf("seed: armando id_token: %w", err)
	}
	grant.IDToken = idToken
	if err := c.Store.Tokens().Save(ctx, grant); err != nil {
		return nil, fmt.Errorf("seed: guardando grant: %w", err)
	}
	httpx.ObserveIDTokenIssued(client.ID)

	audit.Event(ctx, "seed.demo",
		logger.ClientID(client.ID),
		logger.UserID(user.ID),
		logger.String("email", util.MaskEmail(user.Email)),
		logger.TokenID(grant.ID),
	)

	fmt.Println("✅ Seed demo listo:")
	fmt.Printf("   Client: %s (secret: %s)\n", client.ID, secret)
	fmt.Printf("   User:   %s\n", util.MaskEmail(user.Email))
	fmt.Printf("   Probar: curl -H 'Authorization: Bearer %s' http://localhost:8080/openid/userinfo\n", grant.AccessToken)

	return grant, nil
}
