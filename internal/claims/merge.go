package claims

import (
	"slices"
	"strings"
)

// Reservadas que NO deben ser sobreescritas por claims de scope para no
// romper invariantes del token.
var reservedTopLevel = []string{
	"iss", "sub", "aud", "exp", "iat", "nbf",
	"jti", "typ", "auth_time",
	"at_hash", "azp", "nonce",
}

// Merge copia src sobre dst. Colisiones entre claims de scope: last write
// wins. Las claves reservadas nunca se pisan.
func Merge(dst, src map[string]any) {
	if dst == nil || src == nil {
		return
	}
	for k, v := range src {
		if slices.ContainsFunc(reservedTopLevel, func(s string) bool { return strings.EqualFold(s, k) }) {
			continue
		}
		dst[k] = v
	}
}
