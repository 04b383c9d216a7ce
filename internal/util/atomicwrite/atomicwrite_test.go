package atomicwrite

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAtomicWriteFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "keys", "ed25519.pem")

	if err := AtomicWriteFile(path, []byte("v1"), 0o600); err != nil {
		t.Fatalf("AtomicWriteFile: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil || string(b) != "v1" {
		t.Fatalf("contenido: %q (%v)", b, err)
	}
	st, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if st.Mode().Perm() != 0o600 {
		t.Fatalf("perms: %v", st.Mode().Perm())
	}

	// sobrescribir reemplaza completo, sin residuos
	if err := AtomicWriteFile(path, []byte("v2"), 0o600); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	b, _ = os.ReadFile(path)
	if string(b) != "v2" {
		t.Fatalf("overwrite contenido: %q", b)
	}

	// el directorio no debe quedar con temporales colgando
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temporales residuales: %v", entries)
	}
}
