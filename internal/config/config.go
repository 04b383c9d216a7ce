package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Bloque app (opcional en YAML). Si no está, queda vacío.
	App struct {
		// dev | staging | prod
		Env string `yaml:"app_env"`
	} `yaml:"app"`

	Server struct {
		Addr               string   `yaml:"addr"`
		CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	} `yaml:"server"`

	// Site: base pública del provider. Vacío => se infiere del request.
	Site struct {
		URL string `yaml:"url"`
	} `yaml:"site"`

	OIDC struct {
		IDToken struct {
			// Vida del id_token en segundos.
			Expire int `yaml:"expire"`
			// Habilita claims de scopes (standard + extension) dentro del id_token.
			IncludeClaims bool `yaml:"include_claims"`
		} `yaml:"idtoken"`
		Token struct {
			// Vida del grant (access/refresh) en segundos.
			Expire int `yaml:"expire"`
		} `yaml:"token"`
		// Nombre registrado del provider de claims por scope (vacío = ninguno).
		ExtraScopeClaims string `yaml:"extra_scope_claims"`
		// Clave estática para browser state sin sesión (vacío = deshabilitado).
		UnauthenticatedSessionManagementKey string `yaml:"unauthenticated_session_management_key"`
	} `yaml:"oidc"`

	Keys struct {
		// PEM Ed25519 del firmante. Se genera con `littlejohn keygen`.
		SigningKeyFile string `yaml:"signing_key_file"`
	} `yaml:"keys"`

	Storage struct {
		Driver   string `yaml:"driver"`
		DSN      string `yaml:"dsn"`
		Postgres struct {
			MaxOpenConns    int    `yaml:"max_open_conns"`
			MaxIdleConns    int    `yaml:"max_idle_conns"`
			ConnMaxLifetime string `yaml:"conn_max_lifetime"`
		} `yaml:"postgres"`
	} `yaml:"storage"`

	Cache struct {
		Kind  string `yaml:"kind"`
		Redis struct {
			Addr   string `yaml:"addr"`
			DB     int    `yaml:"db"`
			Prefix string `yaml:"prefix"`
		} `yaml:"redis"`
		Memory struct {
			DefaultTTL string `yaml:"default_ttl"`
		} `yaml:"memory"`
	} `yaml:"cache"`

	Session struct {
		CookieName string `yaml:"cookie_name"`
		Domain     string `yaml:"domain"`
		SameSite   string `yaml:"samesite"`
		Secure     bool   `yaml:"secure"`
		TTL        string `yaml:"ttl"`
	} `yaml:"session"`

	Rate struct {
		Enabled     bool   `yaml:"enabled"`
		MaxRequests int    `yaml:"max_requests"`
		Window      string `yaml:"window"`
	} `yaml:"rate"`
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return finish(&c)
}

// Default arma una config sin archivo: defaults + overrides de entorno.
// Es el modo env-only del serve cuando no hay config.yaml.
func Default() (*Config, error) {
	return finish(&Config{})
}

func finish(c *Config) (*Config, error) {
	// sane defaults
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.OIDC.IDToken.Expire == 0 {
		c.OIDC.IDToken.Expire = 600
	}
	if c.OIDC.Token.Expire == 0 {
		c.OIDC.Token.Expire = 3600
	}
	if c.Keys.SigningKeyFile == "" {
		c.Keys.SigningKeyFile = "./data/littlejohn/ed25519.pem"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "memory"
	}
	if c.Cache.Kind == "" {
		c.Cache.Kind = "memory"
	}
	if c.Cache.Memory.DefaultTTL == "" {
		c.Cache.Memory.DefaultTTL = "2m"
	}
	// Session defaults
	if c.Session.CookieName == "" {
		c.Session.CookieName = "sid"
	}
	if c.Session.SameSite == "" {
		c.Session.SameSite = "Lax"
	}
	if c.Session.TTL == "" {
		c.Session.TTL = "12h"
	}
	// Rate defaults (enabled queda en lo que diga yaml/env)
	if c.Rate.MaxRequests == 0 {
		c.Rate.MaxRequests = 60
	}
	if c.Rate.Window == "" {
		c.Rate.Window = "1m"
	}

	// validate string durations
	if c.Storage.Postgres.ConnMaxLifetime != "" {
		if _, err := time.ParseDuration(c.Storage.Postgres.ConnMaxLifetime); err != nil {
			return nil, err
		}
	}
	if c.Cache.Memory.DefaultTTL != "" {
		if _, err := time.ParseDuration(c.Cache.Memory.DefaultTTL); err != nil {
			return nil, err
		}
	}
	if c.Session.TTL != "" {
		if _, err := time.ParseDuration(c.Session.TTL); err != nil {
			return nil, err
		}
	}
	if c.Rate.Window != "" {
		if _, err := time.ParseDuration(c.Rate.Window); err != nil {
			return nil, err
		}
	}

	// Overrides por env
	c.applyEnvOverrides()

	return c, nil
}

// ---- Helpers env ----

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}
func getEnvInt(key string) (int, bool) {
	if s, ok := getEnvStr(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i, true
		}
	}
	return 0, false
}
func getEnvBool(key string) (bool, bool) {
	if s, ok := getEnvStr(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return b, true
		}
	}
	return false, false
}
func getEnvCSV(key string) ([]string, bool) {
	if s, ok := getEnvStr(key); ok {
		if strings.TrimSpace(s) == "" {
			return []string{}, true
		}
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				out = append(out, p)
			}
		}
		return out, true
	}
	return nil, false
}

// applyEnvOverrides: pisa config.yaml con variables de entorno.
// Los nombres OIDC_* y SITE_URL son los históricos del provider.
func (c *Config) applyEnvOverrides() {
	// APP
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = strings.ToLower(v)
	}

	// SERVER
	if v, ok := getEnvStr("SERVER_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := getEnvCSV("SERVER_CORS_ALLOWED_ORIGINS"); ok {
		c.Server.CORSAllowedOrigins = v
	}

	// SITE
	if v, ok := getEnvStr("SITE_URL"); ok {
		c.Site.URL = strings.TrimSpace(v)
	}

	// OIDC
	if v, ok := getEnvInt("OIDC_IDTOKEN_EXPIRE"); ok {
		c.OIDC.IDToken.Expire = v
	}
	if v, ok := getEnvBool("OIDC_IDTOKEN_INCLUDE_CLAIMS"); ok {
		c.OIDC.IDToken.IncludeClaims = v
	}
	if v, ok := getEnvInt("OIDC_TOKEN_EXPIRE"); ok {
		c.OIDC.Token.Expire = v
	}
	if v, ok := getEnvStr("OIDC_EXTRA_SCOPE_CLAIMS"); ok {
		c.OIDC.ExtraScopeClaims = strings.TrimSpace(v)
	}
	if v, ok := getEnvStr("OIDC_UNAUTHENTICATED_SESSION_MANAGEMENT_KEY"); ok {
		c.OIDC.UnauthenticatedSessionManagementKey = v
	}

	// KEYS
	if v, ok := getEnvStr("KEYS_SIGNING_KEY_FILE"); ok {
		c.Keys.SigningKeyFile = v
	}

	// STORAGE
	if v, ok := getEnvStr("STORAGE_DRIVER"); ok {
		c.Storage.Driver = v
	}
	if v, ok := getEnvStr("STORAGE_DSN"); ok {
		c.Storage.DSN = v
	}
	if v, ok := getEnvInt("POSTGRES_MAX_OPEN_CONNS"); ok {
		c.Storage.Postgres.MaxOpenConns = v
	}
	if v, ok := getEnvInt("POSTGRES_MAX_IDLE_CONNS"); ok {
		c.Storage.Postgres.MaxIdleConns = v
	}
	if v, ok := getEnvStr("POSTGRES_CONN_MAX_LIFETIME"); ok {
		c.Storage.Postgres.ConnMaxLifetime = v
	}

	// CACHE
	if v, ok := getEnvStr("CACHE_KIND"); ok {
		c.Cache.Kind = v
	}
	if v, ok := getEnvStr("REDIS_ADDR"); ok {
		c.Cache.Redis.Addr = v
	}
	if v, ok := getEnvInt("REDIS_DB"); ok {
		c.Cache.Redis.DB = v
	}
	if v, ok := getEnvStr("REDIS_PREFIX"); ok {
		c.Cache.Redis.Prefix = v
	}
	if v, ok := getEnvStr("CACHE_MEMORY_DEFAULT_TTL"); ok {
		c.Cache.Memory.DefaultTTL = v
	}

	// RATE
	if v, ok := getEnvBool("RATE_ENABLED"); ok {
		c.Rate.Enabled = v
	}
	if v, ok := getEnvInt("RATE_MAX_REQUESTS"); ok {
		c.Rate.MaxRequests = v
	}
	if v, ok := getEnvStr("RATE_WINDOW"); ok {
		c.Rate.Window = v
	}

	// SESSION
	if v, ok := getEnvStr("SESSION_COOKIE_NAME"); ok {
		c.Session.CookieName = v
	}
	if v, ok := getEnvStr("SESSION_DOMAIN"); ok {
		c.Session.Domain = v
	}
	if v, ok := getEnvStr("SESSION_SAMESITE"); ok {
		c.Session.SameSite = v
	}
	if v, ok := getEnvBool("SESSION_SECURE"); ok {
		c.Session.Secure = v
	}
	if v, ok := getEnvStr("SESSION_TTL"); ok {
		c.Session.TTL = v
	}
}

// SessionTTL devuelve la duración de sesión ya parseada (12h si inválida).
func (c *Config) SessionTTL() time.Duration {
	if d, err := time.ParseDuration(c.Session.TTL); err == nil && d > 0 {
		return d
	}
	return 12 * time.Hour
}

// RateWindow devuelve la ventana de rate limit ya parseada (1m si inválida).
func (c *Config) RateWindow() time.Duration {
	if d, err := time.ParseDuration(c.Rate.Window); err == nil && d > 0 {
		return d
	}
	return time.Minute
}
