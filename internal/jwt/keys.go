// Package jwt es el firmante downstream del provider: recibe claim sets ya
// armados y los firma EdDSA con la clave activa. El armado de claims vive en
// internal/oidc; acá solo se firma, parsea y persiste la clave.
package jwt

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"errors"
	"os"

	"github.com/dropDatabas3/littlejohn/internal/util/atomicwrite"
)

// KeySet mantiene una sola clave activa. Rotación queda para más adelante.
type KeySet struct {
	Priv ed25519.PrivateKey
	Pub  ed25519.PublicKey
	KID  string
	Alg  string // "EdDSA"
}

// Generate crea una clave Ed25519 nueva con KID derivado de la pública.
func Generate() (*KeySet, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	return &KeySet{Priv: priv, Pub: pub, KID: kidFor(pub), Alg: "EdDSA"}, nil
}

// kidFor deriva un KID estable de la clave pública.
func kidFor(pub ed25519.PublicKey) string {
	sum := sha256.Sum256(pub)
	return hex.EncodeToString(sum[:6])
}

// Save persiste la clave privada en PEM PKCS#8 con permisos 0600.
// Escritura atómica: un PEM a medias dejaría al provider sin firmante.
func (k *KeySet) Save(path string) error {
	der, err := x509.MarshalPKCS8PrivateKey(k.Priv)
	if err != nil {
		return err
	}
	b := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
	return atomicwrite.AtomicWriteFile(path, b, 0o600)
}

// Load lee una clave Ed25519 desde un PEM PKCS#8.
func Load(path string) (*KeySet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	blk, _ := pem.Decode(raw)
	if blk == nil {
		return nil, errors.New("jwt: invalid PEM")
	}
	keyAny, err := x509.ParsePKCS8PrivateKey(blk.Bytes)
	if err != nil {
		return nil, err
	}
	priv, ok := keyAny.(ed25519.PrivateKey)
	if !ok {
		return nil, errors.New("jwt: not an Ed25519 key")
	}
	pub := priv.Public().(ed25519.PublicKey)
	return &KeySet{Priv: priv, Pub: pub, KID: kidFor(pub), Alg: "EdDSA"}, nil
}

// LoadOrGenerate carga la clave del path, o la genera y guarda si no existe.
// Retorna created=true cuando tuvo que crearla.
func LoadOrGenerate(path string) (*KeySet, bool, error) {
	ks, err := Load(path)
	if err == nil {
		return ks, false, nil
	}
	if !os.IsNotExist(err) {
		return nil, false, err
	}
	ks, err = Generate()
	if err != nil {
		return nil, false, err
	}
	if err := ks.Save(path); err != nil {
		return nil, false, err
	}
	return ks, true, nil
}
