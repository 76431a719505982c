// Package identity loads and creates the gateway's ed25519 signing key,
// grounded on the teacher's pkg/config identity loading
// (lib.SignerFromEd25519PEMFile) but adapted away from PEM: §6 of the
// specification mandates a raw 32-byte little-endian secret key file
// with no PEM/DID wrapping, so this package reads and writes that exact
// wire format instead of reusing the teacher's PEM codec.
package identity

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
)

// Load reads a raw 32-byte ed25519 seed from path and expands it into a
// private key. It does not create the file if missing; callers that want
// lazy creation (§6 "Key and DB are created lazily if missing") should
// call LoadOrCreate instead.
func Load(path string) (ed25519.PrivateKey, error) {
	seed, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading signing key %s: %w", path, err)
	}
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("signing key %s: expected %d raw bytes, got %d", path, ed25519.SeedSize, len(seed))
	}
	return ed25519.NewKeyFromSeed(seed), nil
}

// Generate creates a fresh ed25519 key pair and writes its 32-byte seed
// to path, creating parent directories as needed. The file is written
// with 0600 permissions since it is a secret key.
func Generate(path string) (ed25519.PrivateKey, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generating ed25519 key: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating key directory: %w", err)
	}
	seed := priv.Seed()
	if err := os.WriteFile(path, seed, 0o600); err != nil {
		return nil, fmt.Errorf("writing signing key %s: %w", path, err)
	}
	return priv, nil
}

// LoadOrCreate loads the key at path, generating a fresh one in its
// place if the file does not yet exist, per §6's lazy-creation contract.
func LoadOrCreate(path string) (ed25519.PrivateKey, error) {
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("statting signing key %s: %w", path, err)
	}
	return Generate(path)
}
