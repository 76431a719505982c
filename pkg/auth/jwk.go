package auth

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
)

// jwk is the subset of RFC 7517 fields this gateway needs: an RSA
// public key tagged with its key id. No JWK-parsing library exists
// anywhere in the example pack, so this narrow field-level decode is a
// documented stdlib exception (see DESIGN.md) rather than a reach for
// the standard library out of habit.
type jwk struct {
	Kid string `json:"kid"`
	Kty string `json:"kty"`
	N   string `json:"n"`
	E   string `json:"e"`
}

type jwkSet struct {
	Keys []jwk `json:"keys"`
}

func decodeJWKSet(data []byte) (jwkSet, error) {
	var set jwkSet
	if err := json.Unmarshal(data, &set); err != nil {
		return jwkSet{}, fmt.Errorf("decoding jwks: %w", err)
	}
	return set, nil
}

func (k jwk) publicKey() (*rsa.PublicKey, error) {
	if k.Kty != "RSA" {
		return nil, fmt.Errorf("unsupported key type %q", k.Kty)
	}
	nBytes, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, fmt.Errorf("decoding modulus: %w", err)
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, fmt.Errorf("decoding exponent: %w", err)
	}

	n := new(big.Int).SetBytes(nBytes)
	e := new(big.Int).SetBytes(eBytes)

	return &rsa.PublicKey{N: n, E: int(e.Int64())}, nil
}
