// Package session guarda la sesión de navegador del provider en cache.
//
// El valor de la cookie es el session ID; en cache se indexa por su digest,
// nunca por el valor crudo.
package session

import (
	"encoding/json"
	"time"

	"github.com/dropDatabas3/littlejohn/internal/cache"
	tokens "github.com/dropDatabas3/littlejohn/internal/security/token"
)

// Session es el payload guardado en cache.
type Session struct {
	UserID  string    `json:"user_id"`
	Expires time.Time `json:"expires"`
}

type Store struct {
	c   cache.Cache
	ttl time.Duration
}

func NewStore(c cache.Cache, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Store{c: c, ttl: ttl}
}

func (s *Store) key(sid string) string { return "sid:" + tokens.SHA256Base64URL(sid) }

// Create crea una sesión para el usuario y devuelve el session ID
// (el valor que va en la cookie).
func (s *Store) Create(userID string) (string, error) {
	sid, err := tokens.GenerateOpaqueToken(32)
	if err != nil {
		return "", err
	}
	expires := time.Now().Add(s.ttl)
	b, _ := json.Marshal(Session{UserID: userID, Expires: expires})
	s.c.Set(s.key(sid), b, s.ttl)
	return sid, nil
}

// Get devuelve la sesión si existe y no expiró.
func (s *Store) Get(sid string) (*Session, bool) {
	b, ok := s.c.Get(s.key(sid))
	if !ok {
		return nil, false
	}
	var p Session
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, false
	}
	if time.Now().After(p.Expires) {
		s.c.Delete(s.key(sid))
		return nil, false
	}
	return &p, true
}

func (s *Store) Delete(sid string) { s.c.Delete(s.key(sid)) }
