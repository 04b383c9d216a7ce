package jwt

import (
	"errors"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// Signer firma claim sets ya armados con la clave activa del KeySet.
type Signer struct {
	Keys *KeySet
}

func NewSigner(ks *KeySet) *Signer {
	return &Signer{Keys: ks}
}

// Sign firma el claim set tal cual llega, con header kid/typ.
// No inyecta ni valida claims: ese es trabajo del que armó el set.
func (s *Signer) Sign(claims map[string]any) (string, error) {
	if s == nil || s.Keys == nil {
		return "", errors.New("jwt: signer without keys")
	}
	mc := jwtv5.MapClaims{}
	for k, v := range claims {
		mc[k] = v
	}
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodEdDSA, mc)
	tk.Header["kid"] = s.Keys.KID
	tk.Header["typ"] = "JWT"
	return tk.SignedString(s.Keys.Priv)
}

// Keyfunc devuelve un jwt.Keyfunc sobre la clave pública activa.
func (s *Signer) Keyfunc() jwtv5.Keyfunc {
	return func(t *jwtv5.Token) (any, error) {
		if kid, _ := t.Header["kid"].(string); kid != "" && kid != s.Keys.KID {
			return nil, errors.New("jwt: unknown kid")
		}
		return s.Keys.Pub, nil
	}
}
