package oidc

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dropDatabas3/littlejohn/internal/config"
)

func sha224hex(s string) string {
	sum := sha256.Sum224([]byte(s))
	return hex.EncodeToString(sum[:])
}

func TestBrowserState_StaticKey(t *testing.T) {
	t.Parallel()
	p := newTestProvider(t, func(c *config.Config) {
		c.OIDC.UnauthenticatedSessionManagementKey = "my_static_key"
	})

	r := httptest.NewRequest("GET", "http://localhost/openid/browser-state", nil)
	got, err := p.BrowserState(r)
	if err != nil {
		t.Fatalf("BrowserState: %v", err)
	}
	if got != sha224hex("my_static_key") {
		t.Fatalf("digest: %q", got)
	}
	if len(got) != 56 {
		t.Fatalf("sha224 hex debe tener 56 chars: %d", len(got))
	}

	// reproducible entre llamadas
	again, err := p.BrowserState(r)
	if err != nil || again != got {
		t.Fatalf("no determinista: %q vs %q (%v)", again, got, err)
	}
}

func TestBrowserState_SessionKeyWinsOverStatic(t *testing.T) {
	t.Parallel()
	p := newTestProvider(t, func(c *config.Config) {
		c.OIDC.UnauthenticatedSessionManagementKey = "my_static_key"
	})

	r := httptest.NewRequest("GET", "http://localhost/openid/browser-state", nil)
	r.AddCookie(&http.Cookie{Name: "sid", Value: "my_session_key"})

	got, err := p.BrowserState(r)
	if err != nil {
		t.Fatalf("BrowserState: %v", err)
	}
	if got != sha224hex("my_session_key") {
		t.Fatalf("debe hashear la session key tal cual: %q", got)
	}
	if got == sha224hex("my_static_key") {
		t.Fatalf("la clave estática no aplica con sesión presente")
	}
}

func TestBrowserState_NotAvailable(t *testing.T) {
	t.Parallel()
	p := newTestProvider(t, nil) // sin clave estática

	r := httptest.NewRequest("GET", "http://localhost/openid/browser-state", nil)
	_, err := p.BrowserState(r)
	if !errors.Is(err, ErrBrowserStateNotAvailable) {
		t.Fatalf("want ErrBrowserStateNotAvailable, got %v", err)
	}
	if !IsNotAvailable(err) {
		t.Fatalf("IsNotAvailable: %v", err)
	}
}
