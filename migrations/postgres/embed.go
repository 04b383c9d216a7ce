// Package migrations embebe los scripts SQL del esquema postgres.
//
// Convención: NNNN_nombre_up.sql aplica, NNNN_nombre_down.sql revierte.
// Se ejecutan en orden lexicográfico (reverso para down).
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
