package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dropDatabas3/littlejohn/internal/domain/repository"
	"github.com/dropDatabas3/littlejohn/internal/oidc"
	"github.com/dropDatabas3/littlejohn/internal/store"
)

func open(t *testing.T) store.Connection {
	t.Helper()
	conn, err := store.OpenAdapter(context.Background(), store.AdapterConfig{Name: "memory"})
	if err != nil {
		t.Fatalf("OpenAdapter: %v", err)
	}
	return conn
}

func TestUsers_CreateAndLookup(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	users := open(t).Users()

	u, err := users.Create(ctx, repository.CreateUserInput{Email: "John@Example.com", Name: "John Doe"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.ID == "" || u.Email != "john@example.com" {
		t.Fatalf("user creado: %+v", u)
	}
	if u.LastLogin != nil {
		t.Fatalf("LastLogin debe arrancar en nil")
	}

	if _, err := users.GetByID(ctx, u.ID); err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	got, err := users.GetByEmail(ctx, "JOHN@example.COM")
	if err != nil || got.ID != u.ID {
		t.Fatalf("GetByEmail case-insensitive: %v", err)
	}

	if _, err := users.Create(ctx, repository.CreateUserInput{Email: "john@example.com"}); !repository.IsConflict(err) {
		t.Fatalf("email duplicado: want ErrConflict, got %v", err)
	}

	at := time.Now()
	if err := users.TouchLastLogin(ctx, u.ID, at); err != nil {
		t.Fatalf("TouchLastLogin: %v", err)
	}
	got, _ = users.GetByID(ctx, u.ID)
	if got.LastLogin == nil || !got.LastLogin.Equal(at) {
		t.Fatalf("LastLogin: %v", got.LastLogin)
	}
}

func TestClients_CRUD(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clients := open(t).Clients()

	cl := &repository.Client{
		ID:                     "app-1",
		Name:                   "Demo",
		Type:                   repository.ClientTypeConfidential,
		PostLogoutRedirectURIs: []string{"https://rp.example.com/bye"},
	}
	if err := clients.Create(ctx, cl); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := clients.Create(ctx, cl); !repository.IsConflict(err) {
		t.Fatalf("client_id duplicado: want ErrConflict, got %v", err)
	}

	got, err := clients.Get(ctx, "app-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.AllowsPostLogoutRedirect("https://rp.example.com/bye") {
		t.Fatalf("post_logout_redirect_uri registrada no matchea")
	}
	if got.AllowsPostLogoutRedirect("https://rp.example.com/bye/") {
		t.Fatalf("match debe ser exacto, sin normalizar")
	}

	if err := clients.Delete(ctx, "app-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := clients.Get(ctx, "app-1"); !repository.IsNotFound(err) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestTokens_SaveSerializesClaims(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	tokens := open(t).Tokens()

	now := time.Now().UTC()
	tk := &repository.Token{
		ID:          "t-1",
		UserID:      "u-1",
		ClientID:    "app-1",
		Scope:       []string{"openid", "email"},
		AccessToken: "acc-1",
		CreatedAt:   now,
		ExpiresAt:   now.Add(time.Hour),
		IDToken: map[string]any{
			"iss":        "http://localhost:8000/openid",
			"sub":        "u-1",
			"iat":        int64(1735689600),
			"updated_at": time.Date(2002, 10, 15, 9, 0, 0, 0, time.UTC),
			"birthdate":  oidc.DateOf(time.Date(2000, 12, 25, 3, 4, 5, 0, time.UTC)),
		},
	}
	if err := tokens.Save(ctx, tk); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := tokens.GetByID(ctx, "t-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.IDToken["updated_at"] != "2002-10-15 09:00:00" {
		t.Fatalf("updated_at: %v", got.IDToken["updated_at"])
	}
	if got.IDToken["birthdate"] != "2000-12-25" {
		t.Fatalf("birthdate: %v", got.IDToken["birthdate"])
	}
	if got.IDToken["iat"] != int64(1735689600) {
		t.Fatalf("iat debe quedar numérico: %v", got.IDToken["iat"])
	}
	// lo que quedó en memoria es lo mismo que se lee de vuelta
	if tk.IDToken["updated_at"] != "2002-10-15 09:00:00" {
		t.Fatalf("Save debe dejar el claim set ya serializado en el token")
	}
}

func TestTokens_CyclicClaimsWriteNothing(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	tokens := open(t).Tokens()

	cyc := map[string]any{"sub": "u-1"}
	cyc["self"] = cyc
	tk := &repository.Token{ID: "t-cyc", AccessToken: "acc-cyc", ClientID: "app-1", IDToken: cyc}

	if err := tokens.Save(ctx, tk); !errors.Is(err, oidc.ErrCyclicClaims) {
		t.Fatalf("want ErrCyclicClaims, got %v", err)
	}
	if _, err := tokens.GetByID(ctx, "t-cyc"); !repository.IsNotFound(err) {
		t.Fatalf("un Save fallido no debe persistir nada: %v", err)
	}
}

func TestTokens_LookupAndDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	tokens := open(t).Tokens()

	now := time.Now().UTC()
	tk := &repository.Token{ID: "t-2", ClientID: "app-1", AccessToken: "acc-2", ExpiresAt: now.Add(time.Hour)}
	if err := tokens.Save(ctx, tk); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := tokens.GetByAccessToken(ctx, "acc-2")
	if err != nil || got.ID != "t-2" {
		t.Fatalf("GetByAccessToken: %v", err)
	}
	if _, err := tokens.GetByAccessToken(ctx, "nope"); !repository.IsNotFound(err) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	if err := tokens.Delete(ctx, "t-2"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := tokens.GetByAccessToken(ctx, "acc-2"); !repository.IsNotFound(err) {
		t.Fatalf("el índice por access token debe limpiarse: %v", err)
	}
}

func TestTokens_DeleteExpired(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	tokens := open(t).Tokens()

	now := time.Now().UTC()
	alive := &repository.Token{ID: "t-alive", ClientID: "app-1", AccessToken: "acc-alive", ExpiresAt: now.Add(time.Hour)}
	dead := &repository.Token{ID: "t-dead", ClientID: "app-1", AccessToken: "acc-dead", ExpiresAt: now.Add(-time.Hour)}
	for _, tk := range []*repository.Token{alive, dead} {
		if err := tokens.Save(ctx, tk); err != nil {
			t.Fatalf("Save %s: %v", tk.ID, err)
		}
	}

	n, err := tokens.DeleteExpired(ctx, now)
	if err != nil || n != 1 {
		t.Fatalf("DeleteExpired: n=%d err=%v", n, err)
	}
	if _, err := tokens.GetByID(ctx, "t-alive"); err != nil {
		t.Fatalf("el grant vigente debe sobrevivir: %v", err)
	}
	if _, err := tokens.GetByID(ctx, "t-dead"); !repository.IsNotFound(err) {
		t.Fatalf("el grant vencido debe purgarse: %v", err)
	}
}
