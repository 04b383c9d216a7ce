// Package logger provides a singleton Zap logger with context-based scoping.
//
// Inicialización (una vez en main):
//
//	logger.Init(logger.Config{
//	    Env:   os.Getenv("APP_ENV"),   // "dev" o "prod"
//	    Level: os.Getenv("LOG_LEVEL"), // "debug", "info", "warn", "error"
//	})
//	defer logger.Sync()
//
// En handlers/services (con contexto, el middleware de logging inyecta
// un logger scoped con request_id):
//
//	log := logger.From(ctx)
//	log.Info("id_token issued", logger.ClientID(clientID))
//
// Sin contexto (fallback al singleton):
//
//	logger.L().Info("application started")
package logger
