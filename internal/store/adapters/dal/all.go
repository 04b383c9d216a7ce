// Package dal registra todos los adapters disponibles.
//
// Importar con blank import desde el main:
//
//	import _ "github.com/dropDatabas3/littlejohn/internal/store/adapters/dal"
package dal

import (
	_ "github.com/dropDatabas3/littlejohn/internal/store/adapters/memory"
	_ "github.com/dropDatabas3/littlejohn/internal/store/adapters/pg"
)
