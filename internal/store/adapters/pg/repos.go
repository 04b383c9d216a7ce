package pg

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/littlejohn/internal/domain/repository"
	"github.com/dropDatabas3/littlejohn/internal/oidc"
)

// ─── UserRepository ───

type userRepo struct{ pool *pgxpool.Pool }

const userColumns = `id, email, email_verified, name, given_name, family_name, nickname, last_login, created_at`

func (r *userRepo) GetByID(ctx context.Context, userID string) (*repository.User, error) {
	const query = `SELECT ` + userColumns + ` FROM app_user WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, userID))
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*repository.User, error) {
	const query = `SELECT ` + userColumns + ` FROM app_user WHERE email = LOWER($1)`
	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

func (r *userRepo) scanOne(row pgx.Row) (*repository.User, error) {
	var (
		u                         repository.User
		name, given, family, nick *string
	)
	err := row.Scan(
		&u.ID, &u.Email, &u.EmailVerified,
		&name, &given, &family, &nick,
		&u.LastLogin, &u.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.Name = orEmpty(name)
	u.GivenName = orEmpty(given)
	u.FamilyName = orEmpty(family)
	u.Nickname = orEmpty(nick)
	return &u, nil
}

func (r *userRepo) Create(ctx context.Context, input repository.CreateUserInput) (*repository.User, error) {
	if input.Email == "" {
		return nil, repository.ErrInvalidInput
	}
	const query = `
		INSERT INTO app_user (id, email, email_verified, name, given_name, family_name, nickname, created_at)
		VALUES ($1, LOWER($2), $3, $4, $5, $6, $7, NOW())
		RETURNING created_at
	`
	u := &repository.User{
		ID:            uuid.NewString(),
		Email:         input.Email,
		EmailVerified: input.EmailVerified,
		Name:          input.Name,
		GivenName:     input.GivenName,
		FamilyName:    input.FamilyName,
		Nickname:      input.Nickname,
	}
	err := r.pool.QueryRow(ctx, query,
		u.ID, u.Email, u.EmailVerified,
		nullIfEmpty(u.Name), nullIfEmpty(u.GivenName), nullIfEmpty(u.FamilyName), nullIfEmpty(u.Nickname),
	).Scan(&u.CreatedAt)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" { // unique_violation
			return nil, repository.ErrConflict
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepo) TouchLastLogin(ctx context.Context, userID string, at time.Time) error {
	const query = `UPDATE app_user SET last_login = $2 WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, userID, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ─── ClientRepository ───

type clientRepo struct{ pool *pgxpool.Pool }

func (r *clientRepo) Get(ctx context.Context, clientID string) (*repository.Client, error) {
	const query = `
		SELECT id, name, client_type, secret_hash, redirect_uris, post_logout_redirect_uris,
		       scopes, require_consent, created_at
		FROM client WHERE id = $1
	`
	var (
		cl     repository.Client
		secret *string
	)
	err := r.pool.QueryRow(ctx, query, clientID).Scan(
		&cl.ID, &cl.Name, &cl.Type, &secret,
		&cl.RedirectURIs, &cl.PostLogoutRedirectURIs,
		&cl.Scopes, &cl.RequireConsent, &cl.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	cl.SecretHash = orEmpty(secret)
	return &cl, nil
}

func (r *clientRepo) Create(ctx context.Context, cl *repository.Client) error {
	if cl == nil || cl.ID == "" {
		return repository.ErrInvalidInput
	}
	const query = `
		INSERT INTO client (id, name, client_type, secret_hash, redirect_uris, post_logout_redirect_uris,
		                    scopes, require_consent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`
	_, err := r.pool.Exec(ctx, query,
		cl.ID, cl.Name, cl.Type, nullIfEmpty(cl.SecretHash),
		cl.RedirectURIs, cl.PostLogoutRedirectURIs,
		cl.Scopes, cl.RequireConsent,
	)
	if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" { // unique_violation
		return repository.ErrConflict
	}
	return err
}

func (r *clientRepo) Delete(ctx context.Context, clientID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM client WHERE id = $1`, clientID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ─── TokenRepository ───

type tokenRepo struct{ pool *pgxpool.Pool }

const tokenColumns = `id, user_id, client_id, scope, access_token, refresh_token, id_token, created_at, expires_at`

func (r *tokenRepo) Save(ctx context.Context, t *repository.Token) error {
	if t == nil || t.ID == "" {
		return repository.ErrInvalidInput
	}

	// Claim set storage-safe antes del INSERT; estructuras cíclicas no llegan a la DB.
	safe, err := oidc.SerializeClaims(t.IDToken)
	if err != nil {
		return err
	}
	t.IDToken = safe

	const query = `
		INSERT INTO oidc_token (id, user_id, client_id, scope, access_token, refresh_token, id_token, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			scope = EXCLUDED.scope,
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			id_token = EXCLUDED.id_token,
			expires_at = EXCLUDED.expires_at
	`
	_, err = r.pool.Exec(ctx, query,
		t.ID, nullIfEmpty(t.UserID), t.ClientID, t.Scope,
		t.AccessToken, t.RefreshToken, t.IDToken,
		t.CreatedAt, t.ExpiresAt,
	)
	return err
}

func (r *tokenRepo) GetByID(ctx context.Context, id string) (*repository.Token, error) {
	const query = `SELECT ` + tokenColumns + ` FROM oidc_token WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *tokenRepo) GetByAccessToken(ctx context.Context, accessToken string) (*repository.Token, error) {
	const query = `SELECT ` + tokenColumns + ` FROM oidc_token WHERE access_token = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, accessToken))
}

func (r *tokenRepo) scanOne(row pgx.Row) (*repository.Token, error) {
	var (
		t      repository.Token
		userID *string
	)
	err := row.Scan(
		&t.ID, &userID, &t.ClientID, &t.Scope,
		&t.AccessToken, &t.RefreshToken, &t.IDToken,
		&t.CreatedAt, &t.ExpiresAt,
	)
	if err == pgx.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	t.UserID = orEmpty(userID)
	return &t, nil
}

func (r *tokenRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM oidc_token WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *tokenRepo) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM oidc_token WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
