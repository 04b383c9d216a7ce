package repository

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	ClientTypePublic       = "public"
	ClientTypeConfidential = "confidential"
)

// Client representa un cliente OIDC registrado (relying party).
type Client struct {
	ID                     string // client_id público
	Name                   string
	Type                   string // "public" | "confidential"
	SecretHash             string // bcrypt; vacío para clients public
	RedirectURIs           []string
	PostLogoutRedirectURIs []string
	Scopes                 []string
	RequireConsent         bool
	CreatedAt              time.Time
}

// AllowsPostLogoutRedirect indica si la URI está registrada para logout.
// Comparación exacta, sin normalización.
func (c *Client) AllowsPostLogoutRedirect(uri string) bool {
	for _, u := range c.PostLogoutRedirectURIs {
		if u == uri {
			return true
		}
	}
	return false
}

// HashClientSecret genera el hash bcrypt de un secret en claro.
func HashClientSecret(secret string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckClientSecret compara un secret en claro contra el hash almacenado.
// No accede a la BD, solo hace la comparación.
func CheckClientSecret(hash, secret string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}

// ClientRepository define operaciones sobre clients OIDC.
type ClientRepository interface {
	// Get obtiene un client por su client_id público.
	// Retorna ErrNotFound si no existe.
	Get(ctx context.Context, clientID string) (*Client, error)

	// Create registra un nuevo client.
	// Retorna ErrConflict si el client_id ya existe.
	Create(ctx context.Context, c *Client) error

	// Delete elimina un client.
	// Retorna ErrNotFound si no existe.
	Delete(ctx context.Context, clientID string) error
}
