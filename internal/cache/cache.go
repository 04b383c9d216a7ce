// Package cache define un cache chico multi-backend.
//
// Soporta:
//   - memory (in-process, para desarrollo/testing)
//   - redis (distribuido, para producción)
//
// Los backends viven en subpaquetes; se abren via infra/cachefactory.
package cache

import "time"

type Cache interface {
	Get(key string) (value []byte, ok bool)
	Set(key string, value []byte, ttl time.Duration)
	Delete(key string)
}
