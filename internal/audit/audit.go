// Package audit emite eventos de auditoría del provider (logout, seed).
// Hoy salen por el logger estructurado bajo el nombre "audit"; a futuro
// puede colgarse un sink externo sin tocar a los que emiten.
package audit

import (
	"context"

	"go.uber.org/zap"

	"github.com/dropDatabas3/littlejohn/internal/observability/logger"
)

// Event registra un evento de auditoría con los campos dados.
// Usa el logger del contexto, así el request_id viaja solo.
func Event(ctx context.Context, event string, fields ...zap.Field) {
	logger.From(ctx).Named("audit").Info(event, fields...)
}
