package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken  = errors.New("invalid_jwt")
	ErrInvalidIssuer = errors.New("invalid_issuer")
)

// Parse valida firma EdDSA, chequea iss (si expectedIss != "") y valida
// exp/nbf con una pequeña tolerancia. Devuelve las claims como map.
func (s *Signer) Parse(token, expectedIss string) (map[string]any, error) {
	tok, err := jwtv5.Parse(token, s.Keyfunc(), jwtv5.WithValidMethods([]string{"EdDSA"}))
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := tok.Claims.(jwtv5.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	// iss check (opcional)
	if expectedIss != "" {
		if iss, _ := claims["iss"].(string); iss != expectedIss {
			return nil, ErrInvalidIssuer
		}
	}

	now := time.Now()
	if expf, ok := claims["exp"].(float64); ok {
		if time.Unix(int64(expf), 0).Before(now.Add(-30 * time.Second)) {
			return nil, ErrInvalidToken
		}
	}
	if nbff, ok := claims["nbf"].(float64); ok {
		if time.Unix(int64(nbff), 0).After(now.Add(30 * time.Second)) {
			return nil, ErrInvalidToken
		}
	}

	out := make(map[string]any, len(claims))
	for k, v := range claims {
		out[k] = v
	}
	return out, nil
}

// UnverifiedClientID extrae el aud de un id_token SIN verificar la firma.
// Es el uso de end-session: el hint identifica al client, no autentica nada.
// Con aud en lista se toma el primero.
func UnverifiedClientID(idToken string) (string, error) {
	tok, _, err := jwtv5.NewParser().ParseUnverified(idToken, jwtv5.MapClaims{})
	if err != nil {
		return "", ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwtv5.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	switch aud := claims["aud"].(type) {
	case string:
		if aud != "" {
			return aud, nil
		}
	case []any:
		if len(aud) > 0 {
			if s, ok := aud[0].(string); ok && s != "" {
				return s, nil
			}
		}
	}
	return "", errors.New("jwt: id_token without aud")
}
