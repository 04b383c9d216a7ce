// Package repository define las entidades de dominio del provider y los
// contratos de persistencia, independientes del almacenamiento subyacente.
//
// Las implementaciones concretas viven en internal/store (memory, postgres).
//
// Convenciones:
//   - Context siempre es el primer parámetro.
//   - Errores de dominio están en errors.go; se comparan con errors.Is.
//   - Los repositorios no aplican lógica de negocio, solo persistencia.
package repository
