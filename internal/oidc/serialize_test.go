package oidc

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestSerializeClaims_Timestamp(t *testing.T) {
	t.Parallel()
	in := map[string]any{"value": time.Date(2002, 10, 15, 9, 0, 0, 0, time.UTC)}

	out, err := SerializeClaims(in)
	if err != nil {
		t.Fatalf("SerializeClaims: %v", err)
	}
	if out["value"] != "2002-10-15 09:00:00" {
		t.Fatalf("timestamp: %v", out["value"])
	}
}

func TestSerializeClaims_DateOnly(t *testing.T) {
	t.Parallel()
	in := map[string]any{"value": Date{Year: 2000, Month: time.December, Day: 25}}

	out, err := SerializeClaims(in)
	if err != nil {
		t.Fatalf("SerializeClaims: %v", err)
	}
	if out["value"] != "2000-12-25" {
		t.Fatalf("date: %v", out["value"])
	}
}

func TestSerializeClaims_UnknownType(t *testing.T) {
	t.Parallel()
	type opaque struct{ a, b int }
	in := map[string]any{"value": opaque{1, 2}}

	out, err := SerializeClaims(in)
	if err != nil {
		t.Fatalf("SerializeClaims: %v", err)
	}
	s, ok := out["value"].(string)
	if !ok || s == "" {
		t.Fatalf("tipo desconocido debe dar string no vacío: %v", out["value"])
	}

	// determinista: misma entrada, misma salida
	again, err := SerializeClaims(in)
	if err != nil {
		t.Fatalf("SerializeClaims: %v", err)
	}
	if again["value"] != s {
		t.Fatalf("no determinista: %v vs %v", again["value"], s)
	}
}

func TestSerializeClaims_FixedPoint(t *testing.T) {
	t.Parallel()
	in := map[string]any{
		"iss":  "http://localhost:8000/openid",
		"iat":  int64(1718000000),
		"ok":   true,
		"none": nil,
		"when": time.Date(2002, 10, 15, 9, 0, 0, 0, time.UTC),
		"nested": map[string]any{
			"birthdate": Date{Year: 2000, Month: time.December, Day: 25},
			"amr":       []any{"pwd", "otp"},
		},
	}

	once, err := SerializeClaims(in)
	if err != nil {
		t.Fatalf("primera pasada: %v", err)
	}
	twice, err := SerializeClaims(once)
	if err != nil {
		t.Fatalf("segunda pasada: %v", err)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("no es punto fijo:\n%v\n%v", once, twice)
	}

	// primitivos y anidados pasan intactos
	if once["iat"] != int64(1718000000) || once["ok"] != true || once["none"] != nil {
		t.Fatalf("primitivos alterados: %v", once)
	}
	nested, ok := once["nested"].(map[string]any)
	if !ok {
		t.Fatalf("nested: %T", once["nested"])
	}
	if nested["birthdate"] != "2000-12-25" {
		t.Fatalf("birthdate: %v", nested["birthdate"])
	}
}

func TestSerializeClaims_InputUntouched(t *testing.T) {
	t.Parallel()
	when := time.Date(2002, 10, 15, 9, 0, 0, 0, time.UTC)
	in := map[string]any{"when": when}

	if _, err := SerializeClaims(in); err != nil {
		t.Fatalf("SerializeClaims: %v", err)
	}
	if in["when"] != when {
		t.Fatalf("la entrada no debe mutarse: %v", in["when"])
	}
}

func TestSerializeClaims_Cycle(t *testing.T) {
	t.Parallel()
	m := map[string]any{}
	m["self"] = m

	_, err := SerializeClaims(m)
	if !errors.Is(err, ErrCyclicClaims) {
		t.Fatalf("want ErrCyclicClaims, got %v", err)
	}
}

func TestSerializeClaims_SharedSubtreeIsNotACycle(t *testing.T) {
	t.Parallel()
	shared := map[string]any{"x": 1}
	in := map[string]any{"a": shared, "b": shared}

	out, err := SerializeClaims(in)
	if err != nil {
		t.Fatalf("compartir un subárbol no es ciclo: %v", err)
	}
	if !reflect.DeepEqual(out["a"], out["b"]) {
		t.Fatalf("subárboles distintos: %v", out)
	}
}
