package oidc

import (
	"fmt"
	"reflect"
	"time"
)

// Layout de timestamps dentro del claim set persistido.
const timestampLayout = "2006-01-02 15:04:05"

// SerializeClaims convierte un claim set a su forma storage-safe: deja pasar
// primitivos (string, números, bool, nil), recorre maps y slices, y convierte
// cualquier otro valor a un string determinista. El resultado es punto fijo:
// re-serializarlo devuelve lo mismo. La conversión es one-way; al leer nadie
// reconstruye los tipos originales.
//
// Nunca entra en pánico; un grafo cíclico corta con ErrCyclicClaims.
func SerializeClaims(cs map[string]any) (map[string]any, error) {
	if cs == nil {
		return nil, nil
	}
	v, err := serializeValue(cs, make(map[uintptr]struct{}))
	if err != nil {
		return nil, err
	}
	return v.(map[string]any), nil
}

func serializeValue(v any, seen map[uintptr]struct{}) (any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		return t, nil
	case bool:
		return t, nil
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return t, nil
	case time.Time:
		return t.Format(timestampLayout), nil
	case Date:
		return t.String(), nil
	case map[string]any:
		ptr := reflect.ValueOf(t).Pointer()
		if _, ok := seen[ptr]; ok {
			return nil, ErrCyclicClaims
		}
		seen[ptr] = struct{}{}
		out := make(map[string]any, len(t))
		for k, val := range t {
			sv, err := serializeValue(val, seen)
			if err != nil {
				return nil, err
			}
			out[k] = sv
		}
		delete(seen, ptr)
		return out, nil
	case []any:
		if len(t) == 0 {
			return []any{}, nil
		}
		ptr := reflect.ValueOf(t).Pointer()
		if _, ok := seen[ptr]; ok {
			return nil, ErrCyclicClaims
		}
		seen[ptr] = struct{}{}
		out := make([]any, len(t))
		for i, val := range t {
			sv, err := serializeValue(val, seen)
			if err != nil {
				return nil, err
			}
			out[i] = sv
		}
		delete(seen, ptr)
		return out, nil
	default:
		// Rama explícita para tipos desconocidos: forma textual determinista,
		// nunca vacía.
		s := fmt.Sprintf("%v", t)
		if s == "" {
			s = fmt.Sprintf("%T", t)
		}
		return s, nil
	}
}
