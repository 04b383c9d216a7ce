package memory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dropDatabas3/littlejohn/internal/domain/repository"
	"github.com/dropDatabas3/littlejohn/internal/oidc"
)

// ─── UserRepository ───

type userRepo struct{ c *conn }

func (r *userRepo) GetByID(ctx context.Context, userID string) (*repository.User, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()

	u, ok := r.c.users[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := u
	return &out, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*repository.User, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()

	id, ok := r.c.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := r.c.users[id]
	return &out, nil
}

func (r *userRepo) Create(ctx context.Context, input repository.CreateUserInput) (*repository.User, error) {
	email := normalizeEmail(input.Email)
	if email == "" {
		return nil, repository.ErrInvalidInput
	}

	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	if _, dup := r.c.byEmail[email]; dup {
		return nil, repository.ErrConflict
	}
	u := repository.User{
		ID:            uuid.NewString(),
		Email:         email,
		EmailVerified: input.EmailVerified,
		Name:          input.Name,
		GivenName:     input.GivenName,
		FamilyName:    input.FamilyName,
		Nickname:      input.Nickname,
		CreatedAt:     time.Now().UTC(),
	}
	r.c.users[u.ID] = u
	r.c.byEmail[email] = u.ID

	out := u
	return &out, nil
}

func (r *userRepo) TouchLastLogin(ctx context.Context, userID string, at time.Time) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	u, ok := r.c.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	t := at
	u.LastLogin = &t
	r.c.users[userID] = u
	return nil
}

func normalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// ─── ClientRepository ───

type clientRepo struct{ c *conn }

func (r *clientRepo) Get(ctx context.Context, clientID string) (*repository.Client, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()

	cl, ok := r.c.clients[clientID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := cl
	return &out, nil
}

func (r *clientRepo) Create(ctx context.Context, cl *repository.Client) error {
	if cl == nil || strings.TrimSpace(cl.ID) == "" {
		return repository.ErrInvalidInput
	}

	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	if _, dup := r.c.clients[cl.ID]; dup {
		return repository.ErrConflict
	}
	if cl.CreatedAt.IsZero() {
		cl.CreatedAt = time.Now().UTC()
	}
	r.c.clients[cl.ID] = *cl
	return nil
}

func (r *clientRepo) Delete(ctx context.Context, clientID string) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	if _, ok := r.c.clients[clientID]; !ok {
		return repository.ErrNotFound
	}
	delete(r.c.clients, clientID)
	return nil
}

// ─── TokenRepository ───

type tokenRepo struct{ c *conn }

func (r *tokenRepo) Save(ctx context.Context, t *repository.Token) error {
	if t == nil || t.ID == "" {
		return repository.ErrInvalidInput
	}

	// El claim set se vuelve storage-safe ANTES de tocar los maps; si la
	// estructura es cíclica no se escribe nada.
	safe, err := oidc.SerializeClaims(t.IDToken)
	if err != nil {
		return err
	}
	t.IDToken = safe

	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	// update con access token nuevo: limpiar el índice viejo
	if prev, ok := r.c.tokens[t.ID]; ok && prev.AccessToken != t.AccessToken {
		delete(r.c.byAccess, prev.AccessToken)
	}
	r.c.tokens[t.ID] = *t
	if t.AccessToken != "" {
		r.c.byAccess[t.AccessToken] = t.ID
	}
	return nil
}

func (r *tokenRepo) GetByID(ctx context.Context, id string) (*repository.Token, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()

	t, ok := r.c.tokens[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := t
	return &out, nil
}

func (r *tokenRepo) GetByAccessToken(ctx context.Context, accessToken string) (*repository.Token, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()

	id, ok := r.c.byAccess[accessToken]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := r.c.tokens[id]
	return &out, nil
}

func (r *tokenRepo) Delete(ctx context.Context, id string) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	t, ok := r.c.tokens[id]
	if !ok {
		return repository.ErrNotFound
	}
	delete(r.c.tokens, id)
	delete(r.c.byAccess, t.AccessToken)
	return nil
}

func (r *tokenRepo) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	var n int
	for id, t := range r.c.tokens {
		if t.Expired(now) {
			delete(r.c.tokens, id)
			delete(r.c.byAccess, t.AccessToken)
			n++
		}
	}
	return n, nil
}
