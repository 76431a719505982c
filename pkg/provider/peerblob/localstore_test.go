package peerblob

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cidgate/cidgate/pkg/cidx"
)

func TestLocalStorePutGetRoundTrip(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	data := []byte("hello peer")
	c := cidx.Blake3Raw(cidx.CodecRaw, data)

	require.NoError(t, store.Put(context.Background(), c, bytes.NewReader(data)))

	digest, err := c.Digest()
	require.NoError(t, err)
	rc, err := store.Get(context.Background(), digest)
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, data, got)
}

func TestLocalStoreRejectsHashMismatch(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	c := cidx.Blake3Raw(cidx.CodecRaw, []byte("expected"))
	err = store.Put(context.Background(), c, bytes.NewReader([]byte("different bytes entirely")))
	require.Error(t, err)
}

func TestLocalStoreRejectsNonBlake3Cid(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	digest := [32]byte{1, 2, 3}
	c, err := cidx.New(cidx.CodecRaw, cidx.HashSHA256, digest[:])
	require.NoError(t, err)

	err = store.Put(context.Background(), c, bytes.NewReader([]byte("x")))
	require.Error(t, err)
}
