package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_DefaultsAndFile(t *testing.T) {
	path := writeYAML(t, `
site:
  url: "http://localhost:8000"
oidc:
  idtoken:
    expire: 300
    include_claims: true
storage:
  driver: memory
`)
	// getEnvStr trata vacío como ausente: neutraliza fugas del entorno real.
	for _, k := range []string{"SITE_URL", "OIDC_IDTOKEN_EXPIRE", "OIDC_TOKEN_EXPIRE", "RATE_ENABLED", "SESSION_TTL"} {
		t.Setenv(k, "")
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if c.Site.URL != "http://localhost:8000" {
		t.Fatalf("site.url: %q", c.Site.URL)
	}
	if c.OIDC.IDToken.Expire != 300 || !c.OIDC.IDToken.IncludeClaims {
		t.Fatalf("oidc.idtoken: %+v", c.OIDC.IDToken)
	}

	// defaults donde el yaml calla
	if c.Server.Addr != ":8080" {
		t.Fatalf("server.addr default: %q", c.Server.Addr)
	}
	if c.OIDC.Token.Expire != 3600 {
		t.Fatalf("oidc.token.expire default: %d", c.OIDC.Token.Expire)
	}
	if c.Session.CookieName != "sid" || c.SessionTTL() != 12*time.Hour {
		t.Fatalf("session defaults: %+v", c.Session)
	}
	if c.Rate.Enabled || c.Rate.MaxRequests != 60 || c.RateWindow() != time.Minute {
		t.Fatalf("rate defaults: %+v", c.Rate)
	}
	if c.OIDC.IDToken.IncludeClaims != true {
		t.Fatalf("include_claims del yaml: %v", c.OIDC.IDToken.IncludeClaims)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeYAML(t, `
site:
  url: "http://from-yaml:8000"
`)
	t.Setenv("SITE_URL", "https://sso.example.org")
	t.Setenv("OIDC_IDTOKEN_EXPIRE", "900")
	t.Setenv("OIDC_IDTOKEN_INCLUDE_CLAIMS", "true")
	t.Setenv("OIDC_EXTRA_SCOPE_CLAIMS", "pizza")
	t.Setenv("OIDC_UNAUTHENTICATED_SESSION_MANAGEMENT_KEY", "my_static_key")
	t.Setenv("RATE_ENABLED", "true")
	t.Setenv("RATE_MAX_REQUESTS", "5")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Site.URL != "https://sso.example.org" {
		t.Fatalf("env debe pisar yaml: %q", c.Site.URL)
	}
	if c.OIDC.IDToken.Expire != 900 || !c.OIDC.IDToken.IncludeClaims {
		t.Fatalf("oidc env: %+v", c.OIDC.IDToken)
	}
	if c.OIDC.ExtraScopeClaims != "pizza" {
		t.Fatalf("extra_scope_claims: %q", c.OIDC.ExtraScopeClaims)
	}
	if c.OIDC.UnauthenticatedSessionManagementKey != "my_static_key" {
		t.Fatalf("static key: %q", c.OIDC.UnauthenticatedSessionManagementKey)
	}
	if !c.Rate.Enabled || c.Rate.MaxRequests != 5 {
		t.Fatalf("rate env: %+v", c.Rate)
	}
}

func TestDefault_EnvOnly(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("CACHE_KIND", "")
	t.Setenv("SITE_URL", "http://localhost:9000")
	t.Setenv("OIDC_TOKEN_EXPIRE", "7200")

	c, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if c.Site.URL != "http://localhost:9000" {
		t.Fatalf("site.url: %q", c.Site.URL)
	}
	if c.OIDC.Token.Expire != 7200 {
		t.Fatalf("token.expire: %d", c.OIDC.Token.Expire)
	}
	if c.Storage.Driver != "memory" || c.Cache.Kind != "memory" {
		t.Fatalf("drivers default: %q %q", c.Storage.Driver, c.Cache.Kind)
	}
}

func TestLoad_BadDuration(t *testing.T) {
	path := writeYAML(t, `
session:
  ttl: "doce horas"
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("una duración inválida debe fallar el load")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("archivo inexistente debe fallar")
	}
}
