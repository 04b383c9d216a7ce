package claims

import "github.com/dropDatabas3/littlejohn/internal/domain/repository"

// Scopes estándar que desbloquean claims de perfil.
const (
	ScopeOpenID  = "openid"
	ScopeEmail   = "email"
	ScopeProfile = "profile"
)

// Standard devuelve los claims asociados a los scopes estándar presentes,
// leídos del perfil del usuario. Nunca emite claves con valor vacío.
func Standard(user *repository.User, scopes []string) map[string]any {
	out := map[string]any{}
	if user == nil {
		return out
	}
	for _, s := range scopes {
		switch s {
		case ScopeEmail:
			if user.Email != "" {
				out["email"] = user.Email
				out["email_verified"] = user.EmailVerified
			}
		case ScopeProfile:
			putNonEmpty(out, "name", user.Name)
			putNonEmpty(out, "given_name", user.GivenName)
			putNonEmpty(out, "family_name", user.FamilyName)
			putNonEmpty(out, "nickname", user.Nickname)
		}
	}
	return out
}

func putNonEmpty(m map[string]any, key, val string) {
	if val != "" {
		m[key] = val
	}
}
