package oidc

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/dropDatabas3/littlejohn/internal/config"
)

func newTestProvider(t *testing.T, mutate func(*config.Config)) *Provider {
	t.Helper()
	cfg := &config.Config{}
	cfg.OIDC.IDToken.Expire = 600
	cfg.OIDC.Token.Expire = 3600
	cfg.Session.CookieName = "sid"
	if mutate != nil {
		mutate(cfg)
	}
	p, err := NewProvider(cfg)
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	return p
}

func TestIssuer_FromConfig(t *testing.T) {
	t.Parallel()
	p := newTestProvider(t, func(c *config.Config) { c.Site.URL = "http://localhost:8000" })

	iss, err := p.Issuer("", nil)
	if err != nil {
		t.Fatalf("Issuer: %v", err)
	}
	if iss != "http://localhost:8000/openid" {
		t.Fatalf("issuer: %q", iss)
	}
}

func TestIssuer_FromRequest(t *testing.T) {
	t.Parallel()
	p := newTestProvider(t, nil) // sin site.url

	r := httptest.NewRequest("GET", "http://host-from-request:8888/openid/authorize", nil)
	iss, err := p.Issuer("", r)
	if err != nil {
		t.Fatalf("Issuer: %v", err)
	}
	if iss != "http://host-from-request:8888/openid" {
		t.Fatalf("issuer: %q", iss)
	}
}

func TestIssuer_ExplicitOverride(t *testing.T) {
	t.Parallel()
	// el override gana aunque haya config y request
	p := newTestProvider(t, func(c *config.Config) { c.Site.URL = "http://localhost:8000" })

	r := httptest.NewRequest("GET", "http://host-from-request:8888/", nil)
	iss, err := p.Issuer("http://127.0.0.1:9000", r)
	if err != nil {
		t.Fatalf("Issuer: %v", err)
	}
	if iss != "http://127.0.0.1:9000/openid" {
		t.Fatalf("issuer: %q", iss)
	}
}

func TestIssuer_TrailingSlash(t *testing.T) {
	t.Parallel()
	p := newTestProvider(t, nil)

	iss, err := p.Issuer("http://example.org/", nil)
	if err != nil {
		t.Fatalf("Issuer: %v", err)
	}
	if iss != "http://example.org/openid" {
		t.Fatalf("issuer: %q", iss)
	}
}

func TestIssuer_ForwardedHeaders(t *testing.T) {
	t.Parallel()
	p := newTestProvider(t, nil)

	r := httptest.NewRequest("GET", "http://internal:8080/", nil)
	r.Header.Set("X-Forwarded-Proto", "https")
	r.Header.Set("X-Forwarded-Host", "sso.example.org")

	iss, err := p.Issuer("", r)
	if err != nil {
		t.Fatalf("Issuer: %v", err)
	}
	if iss != "https://sso.example.org/openid" {
		t.Fatalf("issuer: %q", iss)
	}
}

func TestIssuer_NoSource(t *testing.T) {
	t.Parallel()
	p := newTestProvider(t, nil)

	_, err := p.Issuer("", nil)
	if !errors.Is(err, ErrIssuerNotConfigured) {
		t.Fatalf("want ErrIssuerNotConfigured, got %v", err)
	}
	if !IsConfigurationError(err) {
		t.Fatalf("want configuration error, got %v", err)
	}
}
