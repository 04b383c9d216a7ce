package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	rdb "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/dropDatabas3/littlejohn/internal/app"
	"github.com/dropDatabas3/littlejohn/internal/bootstrap"
	"github.com/dropDatabas3/littlejohn/internal/config"
	httpx "github.com/dropDatabas3/littlejohn/internal/http"
	"github.com/dropDatabas3/littlejohn/internal/http/handlers"
	"github.com/dropDatabas3/littlejohn/internal/infra/cachefactory"
	"github.com/dropDatabas3/littlejohn/internal/infra/grantlookup"
	jwtx "github.com/dropDatabas3/littlejohn/internal/jwt"
	"github.com/dropDatabas3/littlejohn/internal/observability/logger"
	"github.com/dropDatabas3/littlejohn/internal/oidc"
	"github.com/dropDatabas3/littlejohn/internal/rate"
	"github.com/dropDatabas3/littlejohn/internal/session"
	"github.com/dropDatabas3/littlejohn/internal/store"
	_ "github.com/dropDatabas3/littlejohn/internal/store/adapters/dal"
	pgstore "github.com/dropDatabas3/littlejohn/internal/store/adapters/pg"
	"github.com/dropDatabas3/littlejohn/internal/util"
)

// Se inyectan con -ldflags en el build.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	root := &cobra.Command{
		Use:   "littlejohn",
		Short: "Provider OIDC: emisión de id_tokens y session management",
	}
	root.AddCommand(newServeCmd(), newKeygenCmd(), newMigrateCmd(), newVersionCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func newServeCmd() *cobra.Command {
	var (
		flagConfig  string
		flagEnvFile string
		flagSeed    bool
		flagMigrate bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Levanta el provider HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			loadDotenv(flagEnvFile)
			cfg, mode, err := loadConfig(flagConfig)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			logger.Init(logger.Config{
				Env:         cfg.App.Env,
				Level:       envOr("LOG_LEVEL", "info"),
				ServiceName: "littlejohn",
				Version:     version,
			})
			defer func() { _ = logger.Sync() }()
			log := logger.L()

			if cfg.Site.URL == "" {
				log.Warn("site.url vacío: el issuer se deriva de cada request y el seed no puede emitir")
			}

			ctx := context.Background()

			connLifetime, _ := time.ParseDuration(cfg.Storage.Postgres.ConnMaxLifetime)
			conn, err := store.OpenAdapter(ctx, store.AdapterConfig{
				Name:            cfg.Storage.Driver,
				DSN:             cfg.Storage.DSN,
				MaxOpenConns:    cfg.Storage.Postgres.MaxOpenConns,
				MaxIdleConns:    cfg.Storage.Postgres.MaxIdleConns,
				ConnMaxLifetime: connLifetime,
			})
			if err != nil {
				return fmt.Errorf("store: %w", err)
			}
			defer func() { _ = conn.Close() }()

			if flagMigrate {
				if m, ok := conn.(interface{ RunMigrations(context.Context) error }); ok {
					if err := m.RunMigrations(ctx); err != nil {
						return fmt.Errorf("migrations: %w", err)
					}
				} else {
					log.Info("driver sin migraciones, nada que aplicar", logger.String("driver", conn.Name()))
				}
			}

			cacheCfg := cachefactory.Config{Kind: cfg.Cache.Kind}
			cacheCfg.Redis.Addr = cfg.Cache.Redis.Addr
			cacheCfg.Redis.DB = cfg.Cache.Redis.DB
			cacheCfg.Redis.Prefix = cfg.Cache.Redis.Prefix
			cacheCfg.Memory.DefaultTTL = cfg.Cache.Memory.DefaultTTL
			cc, err := cachefactory.Open(cacheCfg)
			if err != nil {
				return fmt.Errorf("cache: %w", err)
			}

			ks, created, err := jwtx.LoadOrGenerate(cfg.Keys.SigningKeyFile)
			if err != nil {
				return fmt.Errorf("signing key: %w", err)
			}
			if created {
				log.Info("clave de firma generada",
					logger.String("path", cfg.Keys.SigningKeyFile),
					logger.String("kid", ks.KID),
				)
			}

			provider, err := oidc.NewProvider(cfg)
			if err != nil {
				return fmt.Errorf("oidc provider: %w", err)
			}

			container := &app.Container{
				Cfg:      cfg,
				Provider: provider,
				Signer:   jwtx.NewSigner(ks),
				Store:    conn,
				Cache:    cc,
				Sessions: session.NewStore(cc, cfg.SessionTTL()),
				Grants:   grantlookup.New(conn.Tokens(), conn.Users()),
			}

			// Metrics primero: el seed incrementa el contador de id_tokens.
			metricsHandler, err := httpx.RegisterMetrics(nil)
			if err != nil {
				return fmt.Errorf("metrics: %w", err)
			}

			if flagSeed {
				if _, err := bootstrap.EnsureDemo(ctx, container); err != nil {
					return fmt.Errorf("seed: %w", err)
				}
			}

			var limiter rate.Limiter
			if cfg.Rate.Enabled {
				if strings.EqualFold(cfg.Cache.Kind, "redis") {
					rc := rdb.NewClient(&rdb.Options{Addr: cfg.Cache.Redis.Addr, DB: cfg.Cache.Redis.DB})
					limiter = rate.NewRedisLimiter(rc, cfg.Cache.Redis.Prefix+"rl:", cfg.Rate.MaxRequests, cfg.RateWindow())
				} else {
					limiter = rate.NewMemoryLimiter(cfg.Rate.MaxRequests, cfg.RateWindow())
				}
			}

			router := httpx.NewRouter(httpx.RouterConfig{
				EndSession:         handlers.NewEndSessionHandler(container),
				UserInfo:           handlers.NewUserInfoHandler(container),
				BrowserState:       handlers.NewBrowserStateHandler(container),
				Readyz:             handlers.NewReadyzHandler(container),
				Metrics:            metricsHandler,
				Limiter:            limiter,
				CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
			})

			log.Info("littlejohn up",
				logger.String("mode", mode),
				logger.String("addr", cfg.Server.Addr),
				logger.String("driver", conn.Name()),
				logger.String("dsn", util.MaskDSN(cfg.Storage.DSN)),
				logger.String("cache", cfg.Cache.Kind),
				logger.String("kid", ks.KID),
				logger.Bool("rate", cfg.Rate.Enabled),
			)
			return httpx.Start(cfg.Server.Addr, router)
		},
	}
	cmd.Flags().StringVar(&flagConfig, "config", "", "ruta a config.yaml (fallback: $CONFIG_PATH o configs/config.yaml)")
	cmd.Flags().StringVar(&flagEnvFile, "env-file", ".env", "ruta a .env (si existe, se carga)")
	cmd.Flags().BoolVar(&flagSeed, "seed", false, "siembra client/usuario demo al arrancar")
	cmd.Flags().BoolVar(&flagMigrate, "migrate", false, "aplica migraciones pendientes antes de servir (solo postgres)")
	return cmd
}

func newKeygenCmd() *cobra.Command {
	var (
		flagOut   string
		flagForce bool
	)
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Genera la clave de firma Ed25519 (PEM PKCS#8)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !flagForce {
				if _, err := os.Stat(flagOut); err == nil {
					return fmt.Errorf("%s ya existe (usar --force para pisarla)", flagOut)
				}
			}
			ks, err := jwtx.Generate()
			if err != nil {
				return err
			}
			if err := ks.Save(flagOut); err != nil {
				return err
			}
			fmt.Printf("✅ Clave Ed25519 generada\n   Path: %s\n   KID:  %s\n", flagOut, ks.KID)
			return nil
		},
	}
	cmd.Flags().StringVar(&flagOut, "out", "./data/littlejohn/ed25519.pem", "destino del PEM")
	cmd.Flags().BoolVar(&flagForce, "force", false, "sobrescribe si ya existe")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	var (
		flagConfig  string
		flagEnvFile string
	)
	cmd := &cobra.Command{
		Use:   "migrate [up|down] [steps]",
		Short: "Aplica o revierte las migraciones embebidas (postgres)",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			loadDotenv(flagEnvFile)
			cfg, _, err := loadConfig(flagConfig)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			action := pgstore.DirectionUp
			if len(args) >= 1 && args[0] != "" {
				action = strings.ToLower(args[0])
			}
			steps := 0
			if len(args) >= 2 {
				n, err := strconv.Atoi(args[1])
				if err != nil || n <= 0 {
					return fmt.Errorf("steps inválido: %q", args[1])
				}
				steps = n
			}
			if !strings.EqualFold(cfg.Storage.Driver, "postgres") {
				return fmt.Errorf("migrate requiere storage.driver=postgres (actual: %q)", cfg.Storage.Driver)
			}

			ctx := context.Background()
			pool, err := pgxpool.New(ctx, cfg.Storage.DSN)
			if err != nil {
				return fmt.Errorf("pgxpool: %w", err)
			}
			defer pool.Close()

			n, err := pgstore.RunMigrations(ctx, pool, action, steps)
			if err != nil {
				return err
			}
			fmt.Printf("✅ %d script(s) %s aplicados\n", n, action)
			return nil
		},
	}
	cmd.Flags().StringVar(&flagConfig, "config", "", "ruta a config.yaml (fallback: $CONFIG_PATH o configs/config.yaml)")
	cmd.Flags().StringVar(&flagEnvFile, "env-file", ".env", "ruta a .env (si existe, se carga)")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Imprime la versión del build",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("littlejohn %s (%s)\n", version, commit)
		},
	}
}

// ---- helpers ----

func loadDotenv(path string) {
	if path == "" || !fileExists(path) {
		return
	}
	if err := godotenv.Load(path); err == nil {
		fmt.Printf("dotenv: cargado %s\n", path)
	}
}

// loadConfig resuelve la config efectiva: --config > $CONFIG_PATH >
// configs/config.yaml > solo env. Devuelve también el modo para el log.
func loadConfig(flagPath string) (*config.Config, string, error) {
	path := flagPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" && fileExists("configs/config.yaml") {
		path = "configs/config.yaml"
	}
	if path == "" {
		cfg, err := config.Default()
		return cfg, "env", err
	}
	cfg, err := config.Load(path)
	return cfg, "yaml", err
}

func fileExists(p string) bool {
	if p == "" {
		return false
	}
	st, err := os.Stat(p)
	return err == nil && !st.IsDir()
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
