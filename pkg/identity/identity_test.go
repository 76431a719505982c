package identity

import (
	"crypto/ed25519"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "identity.key")

	priv, err := Generate(path)
	require.NoError(t, err)
	assert.Len(t, priv, ed25519.PrivateKeySize)

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, priv, loaded)
}

func TestLoadOrCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "identity.key")

	first, err := LoadOrCreate(path)
	require.NoError(t, err)

	second, err := LoadOrCreate(path)
	require.NoError(t, err)

	assert.Equal(t, first, second, "LoadOrCreate must not regenerate an existing key")
}

func TestLoad_WrongSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.key")
	require.NoError(t, os.WriteFile(path, []byte("too short"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
