package bootstrap

import (
	"context"
	"testing"

	"github.com/dropDatabas3/littlejohn/internal/app"
	"github.com/dropDatabas3/littlejohn/internal/config"
	"github.com/dropDatabas3/littlejohn/internal/domain/repository"
	"github.com/dropDatabas3/littlejohn/internal/oidc"
	"github.com/dropDatabas3/littlejohn/internal/store"
	_ "github.com/dropDatabas3/littlejohn/internal/store/adapters/memory"
)

func newTestContainer(t *testing.T) *app.Container {
	t.Helper()

	cfg := &config.Config{}
	cfg.Site.URL = "http://localhost:8000"
	cfg.OIDC.IDToken.Expire = 600
	cfg.OIDC.IDToken.IncludeClaims = true
	cfg.OIDC.Token.Expire = 3600

	p, err := oidc.NewProvider(cfg)
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	conn, err := store.OpenAdapter(context.Background(), store.AdapterConfig{Name: "memory"})
	if err != nil {
		t.Fatalf("OpenAdapter: %v", err)
	}
	return &app.Container{Cfg: cfg, Provider: p, Store: conn}
}

func TestEnsureDemo(t *testing.T) {
	t.Setenv("SEED_CLIENT_SECRET", "")
	ctx := context.Background()
	c := newTestContainer(t)

	grant, err := EnsureDemo(ctx, c)
	if err != nil {
		t.Fatalf("EnsureDemo: %v", err)
	}
	if grant == nil {
		t.Fatalf("la primera corrida debe devolver el grant de muestra")
	}

	cl, err := c.Store.Clients().Get(ctx, DemoClientID)
	if err != nil {
		t.Fatalf("client demo: %v", err)
	}
	if cl.Type != repository.ClientTypeConfidential {
		t.Fatalf("type: %q", cl.Type)
	}
	if !repository.CheckClientSecret(cl.SecretHash, "demo-secret") {
		t.Fatalf("el secret por defecto no verifica contra el hash")
	}

	user, err := c.Store.Users().GetByEmail(ctx, DemoUserEmail)
	if err != nil {
		t.Fatalf("usuario demo: %v", err)
	}
	if user.LastLogin == nil {
		t.Fatalf("el seed debe dejar last_login seteado")
	}

	// El grant quedó persistido y resoluble por access token.
	got, err := c.Store.Tokens().GetByAccessToken(ctx, grant.AccessToken)
	if err != nil {
		t.Fatalf("GetByAccessToken: %v", err)
	}
	if got.UserID != user.ID || got.ClientID != DemoClientID {
		t.Fatalf("grant persistido: %+v", got)
	}

	// Claim set completo: núcleo + auth_time + claims de profile/email.
	idt := got.IDToken
	if idt["iss"] != "http://localhost:8000/openid" {
		t.Fatalf("iss: %v", idt["iss"])
	}
	if idt["sub"] != user.ID || idt["aud"] != DemoClientID {
		t.Fatalf("sub/aud: %v %v", idt["sub"], idt["aud"])
	}
	if _, ok := idt["auth_time"]; !ok {
		t.Fatalf("auth_time ausente con last_login seteado")
	}
	if idt["email"] != DemoUserEmail || idt["name"] != "Ana Demo" {
		t.Fatalf("claims de scope: email=%v name=%v", idt["email"], idt["name"])
	}

	// Idempotencia: la segunda corrida no crea nada nuevo.
	again, err := EnsureDemo(ctx, c)
	if err != nil {
		t.Fatalf("segunda corrida: %v", err)
	}
	if again != nil {
		t.Fatalf("la segunda corrida debe ser no-op")
	}
}

func TestEnsureDemo_SecretOverride(t *testing.T) {
	t.Setenv("SEED_CLIENT_SECRET", "otro-secret")
	ctx := context.Background()
	c := newTestContainer(t)

	if _, err := EnsureDemo(ctx, c); err != nil {
		t.Fatalf("EnsureDemo: %v", err)
	}
	cl, err := c.Store.Clients().Get(ctx, DemoClientID)
	if err != nil {
		t.Fatalf("client demo: %v", err)
	}
	if !repository.CheckClientSecret(cl.SecretHash, "otro-secret") {
		t.Fatalf("SEED_CLIENT_SECRET debe pisar el secret por defecto")
	}
	if repository.CheckClientSecret(cl.SecretHash, "demo-secret") {
		t.Fatalf("el secret por defecto no debe verificar")
	}
}
