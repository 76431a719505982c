package peerblob_test

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/cidgate/cidgate/pkg/cidx"
	"github.com/cidgate/cidgate/pkg/provider"
	"github.com/cidgate/cidgate/pkg/provider/peerblob"
	"github.com/cidgate/cidgate/pkg/route"
)

func TestLocalProviderPutAndGet(t *testing.T) {
	store, err := peerblob.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	p := peerblob.NewLocal("peer-1", store)

	data := []byte("payload")
	c := cidx.Blake3Raw(cidx.CodecRaw, data)

	url, err := p.PutBlob(context.Background(), c, uint64(len(data)), bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, c.String(), url)

	r := route.Route{
		ID:           uuid.New(),
		CreatedAt:    time.Now(),
		ProviderID:   "peer-1",
		ProviderType: route.ProviderTypeIroh,
		Cid:          c,
		Size:         uint64(len(data)),
		Multicodec:   cidx.CodecRaw,
	}
	b, err := p.GetBytes(context.Background(), r)
	require.NoError(t, err)
	defer b.Close()

	got, err := io.ReadAll(b)
	require.NoError(t, err)
	require.Equal(t, data, got)
}

func TestLocalProviderRejectsNonBlake3Put(t *testing.T) {
	store, err := peerblob.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	p := peerblob.NewLocal("peer-1", store)

	digest := [32]byte{9, 9, 9}
	c, err := cidx.New(cidx.CodecRaw, cidx.HashSHA256, digest[:])
	require.NoError(t, err)

	_, err = p.PutBlob(context.Background(), c, 3, bytes.NewReader([]byte("abc")))
	require.Error(t, err)
}

func TestEligibilityIsBlake3Only(t *testing.T) {
	store, err := peerblob.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	p := peerblob.NewLocal("peer-1", store)

	blake3Cid := cidx.Blake3Raw(cidx.CodecRaw, []byte("x"))
	require.True(t, provider.IsEligible(p, blake3Cid))

	sha256Digest := [32]byte{1}
	shaCid, err := cidx.New(cidx.CodecRaw, cidx.HashSHA256, sha256Digest[:])
	require.NoError(t, err)
	require.False(t, provider.IsEligible(p, shaCid))
}
