package oidc

import (
	"context"
	"testing"

	"github.com/dropDatabas3/littlejohn/internal/config"
)

func TestUserClaims_ScopeGating(t *testing.T) {
	t.Parallel()
	// include_claims apagado a propósito: userinfo no depende de ese flag
	p := newTestProvider(t, nil)

	user := testUser(nil)
	client := testClient()
	grant := p.CreateToken(user, client, []string{"openid", "email"})

	got := p.UserClaims(context.Background(), grant, user)
	if got["sub"] != "u-1" {
		t.Fatalf("sub: %v", got["sub"])
	}
	if got["email"] != "john@example.com" || got["email_verified"] != true {
		t.Fatalf("email claims: %v", got)
	}
	if _, present := got["name"]; present {
		t.Fatalf("name requiere scope profile: %v", got)
	}
}

func TestUserClaims_ExtensionProviders(t *testing.T) {
	t.Parallel()
	p := newTestProvider(t, func(c *config.Config) { c.OIDC.ExtraScopeClaims = "pizza" })

	user := testUser(nil)
	client := testClient()
	grant := p.CreateToken(user, client, []string{"openid", "profile", "pizza"})

	got := p.UserClaims(context.Background(), grant, user)
	if got["pizza"] != "Margherita" {
		t.Fatalf("extension claim: %v", got)
	}
	if got["name"] != "John Doe" || got["given_name"] != "John" {
		t.Fatalf("profile claims: %v", got)
	}
	// el provider de extensión no puede pisar sub
	if got["sub"] != "u-1" {
		t.Fatalf("sub: %v", got["sub"])
	}
}

func TestUserClaims_OnlyOpenID(t *testing.T) {
	t.Parallel()
	p := newTestProvider(t, nil)

	user := testUser(nil)
	client := testClient()
	grant := p.CreateToken(user, client, []string{"openid"})

	got := p.UserClaims(context.Background(), grant, user)
	if len(got) != 1 || got["sub"] != "u-1" {
		t.Fatalf("solo sub con scope openid pelado: %v", got)
	}
}
