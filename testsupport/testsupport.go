// Package testsupport provides shared test fixtures, adapted from the
// teacher's pkg/testutil (NewTestConfig-style sensible-defaults
// builders) to this gateway's domain: an in-memory route store, a
// throwaway signing key, and deterministic test CIDs.
package testsupport

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cidgate/cidgate/pkg/cidx"
	"github.com/cidgate/cidgate/pkg/routestore"
)

// NewStore builds a fresh in-memory route index for a single test.
func NewStore(t *testing.T) *routestore.Store {
	t.Helper()
	db, err := routestore.OpenSQLite("")
	require.NoError(t, err)
	s, err := routestore.New(db)
	require.NoError(t, err)
	return s
}

// NewSigner returns a throwaway ed25519 signing key.
func NewSigner(t *testing.T) ed25519.PrivateKey {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	return priv
}

// TestCid returns a deterministic raw-codec BLAKE3 CID derived from seed,
// distinct for distinct seed values.
func TestCid(t *testing.T, seed byte) cidx.Cid {
	t.Helper()
	return cidx.Blake3Raw(cidx.CodecRaw, []byte{seed, seed, seed, seed})
}
