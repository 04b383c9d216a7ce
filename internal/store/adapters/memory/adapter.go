// Package memory implementa el adapter en memoria.
// Pensado para desarrollo y tests; no persiste nada entre procesos.
package memory

import (
	"context"
	"sync"

	"github.com/dropDatabas3/littlejohn/internal/domain/repository"
	"github.com/dropDatabas3/littlejohn/internal/store"
)

func init() {
	store.RegisterAdapter(&memoryAdapter{})
}

type memoryAdapter struct{}

func (a *memoryAdapter) Name() string { return "memory" }

func (a *memoryAdapter) Connect(ctx context.Context, cfg store.AdapterConfig) (store.Connection, error) {
	return &conn{
		users:    make(map[string]repository.User),
		byEmail:  make(map[string]string),
		clients:  make(map[string]repository.Client),
		tokens:   make(map[string]repository.Token),
		byAccess: make(map[string]string),
	}, nil
}

// conn guarda todo en maps protegidos por un RWMutex único.
type conn struct {
	mu       sync.RWMutex
	users    map[string]repository.User // user ID -> user
	byEmail  map[string]string          // email (lower) -> user ID
	clients  map[string]repository.Client
	tokens   map[string]repository.Token // token ID -> token
	byAccess map[string]string           // access token -> token ID
}

func (c *conn) Name() string                   { return "memory" }
func (c *conn) Ping(ctx context.Context) error { return nil }

func (c *conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users, c.byEmail = nil, nil
	c.clients = nil
	c.tokens, c.byAccess = nil, nil
	return nil
}

func (c *conn) Users() repository.UserRepository     { return &userRepo{c: c} }
func (c *conn) Clients() repository.ClientRepository { return &clientRepo{c: c} }
func (c *conn) Tokens() repository.TokenRepository   { return &tokenRepo{c: c} }
