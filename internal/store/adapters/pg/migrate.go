package pg

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/littlejohn/internal/observability/logger"
	migrations "github.com/dropDatabas3/littlejohn/migrations/postgres"
)

// Direcciones de migración.
const (
	DirectionUp   = "up"
	DirectionDown = "down"
)

// migrationLockID es el advisory lock que serializa migraciones entre
// procesos que apuntan a la misma base.
func migrationLockID() int64 {
	h := sha256.Sum256([]byte("littlejohn_migrations"))
	return int64(binary.BigEndian.Uint64(h[:8]))
}

// RunMigrations aplica los scripts embebidos en la dirección pedida bajo un
// advisory lock de postgres: dos réplicas arrancando a la vez no se pisan.
// steps=0 aplica todos; para down, steps acota a las N más recientes.
// Devuelve cuántos scripts ejecutó.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, direction string, steps int) (int, error) {
	suffix := "_up.sql"
	if strings.EqualFold(direction, DirectionDown) {
		suffix = "_down.sql"
	} else if !strings.EqualFold(direction, DirectionUp) {
		return 0, fmt.Errorf("pg: dirección de migración desconocida %q", direction)
	}

	files, err := listScripts(suffix)
	if err != nil {
		return 0, err
	}
	if suffix == "_down.sql" {
		reverse(files)
	}
	if steps > 0 && steps < len(files) {
		files = files[:steps]
	}
	if len(files) == 0 {
		return 0, nil
	}

	lockID := migrationLockID()
	lockCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var acquired bool
	if err := pool.QueryRow(lockCtx, "SELECT pg_try_advisory_lock($1)", lockID).Scan(&acquired); err != nil {
		return 0, fmt.Errorf("pg: acquire migration lock: %w", err)
	}
	if !acquired {
		logger.L().Info("esperando migration lock de otro proceso")
		// pg_advisory_lock bloquea hasta obtenerlo; el timeout lo pone lockCtx
		if _, err := pool.Exec(lockCtx, "SELECT pg_advisory_lock($1)", lockID); err != nil {
			return 0, fmt.Errorf("pg: wait for migration lock: %w", err)
		}
	}
	defer func() {
		if _, err := pool.Exec(context.Background(), "SELECT pg_advisory_unlock($1)", lockID); err != nil {
			logger.L().Warn("no se pudo liberar el migration lock", logger.Err(err))
		}
	}()

	var applied int
	for _, name := range files {
		b, err := fs.ReadFile(migrations.FS, name)
		if err != nil {
			return applied, err
		}
		start := time.Now()
		if _, err := pool.Exec(ctx, string(b)); err != nil {
			return applied, fmt.Errorf("pg: exec %s: %w", name, err)
		}
		logger.L().Info("migración aplicada",
			logger.String("script", name),
			logger.Duration(time.Since(start)),
		)
		applied++
	}
	return applied, nil
}

// RunMigrations sobre la conexión abierta aplica todos los up pendientes.
// Lo usa el serve cuando se pide migrar al arrancar.
func (c *pgConnection) RunMigrations(ctx context.Context) error {
	_, err := RunMigrations(ctx, c.pool, DirectionUp, 0)
	return err
}

func listScripts(suffix string) ([]string, error) {
	entries, err := fs.ReadDir(migrations.FS, ".")
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(strings.ToLower(e.Name()), suffix) {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}

func reverse(ss []string) {
	for i, j := 0, len(ss)-1; i < j; i, j = i+1, j-1 {
		ss[i], ss[j] = ss[j], ss[i]
	}
}
