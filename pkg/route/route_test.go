package route_test

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cidgate/cidgate/pkg/cidx"
	"github.com/cidgate/cidgate/pkg/route"
)

func newSigner(t *testing.T) ed25519.PrivateKey {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	return priv
}

func TestBuildAndVerifySignature(t *testing.T) {
	signer := newSigner(t)
	c := cidx.Blake3Raw(cidx.CodecRaw, []byte("hello route"))

	r, err := route.NewBuilder("provider-1", route.ProviderTypeAzure).
		WithCid(c).
		WithSize(11).
		WithURL("https://acct.blob.core.windows.net/container/name").
		WithMulticodec(cidx.CodecRaw).
		Build(signer)
	require.NoError(t, err)

	require.NoError(t, route.VerifyRoute(r))
	require.True(t, r.VerifiedAt.Equal(r.CreatedAt) || r.VerifiedAt.After(r.CreatedAt))
}

func TestVerifyFailsOnTamperedSize(t *testing.T) {
	signer := newSigner(t)
	c := cidx.Blake3Raw(cidx.CodecRaw, []byte("hello route"))

	r, err := route.NewBuilder("provider-1", route.ProviderTypeAzure).
		WithCid(c).
		WithSize(11).
		WithURL("https://acct.blob.core.windows.net/container/name").
		WithMulticodec(cidx.CodecRaw).
		Build(signer)
	require.NoError(t, err)

	r.Size = 12
	require.ErrorIs(t, route.VerifyRoute(r), route.ErrSignatureInvalid)
}

func TestBuildStubRequiresURL(t *testing.T) {
	_, err := route.NewBuilder("provider-1", route.ProviderTypeAzure).BuildStub()
	require.ErrorIs(t, err, route.ErrMissingURL)
}

func TestBuildRequiresAllFields(t *testing.T) {
	signer := newSigner(t)
	_, err := route.NewBuilder("provider-1", route.ProviderTypeAzure).
		WithURL("https://x/y/z").
		Build(signer)
	require.ErrorIs(t, err, route.ErrMissingCid)
}

func TestCompleteStubPreservesID(t *testing.T) {
	stub, err := route.NewBuilder("provider-1", route.ProviderTypeAzure).
		WithURL("https://acct.blob.core.windows.net/container/data.bin").
		WithSize(1024).
		WithMulticodec(cidx.CodecRaw).
		BuildStub()
	require.NoError(t, err)

	signer := newSigner(t)
	c := cidx.Blake3Raw(cidx.CodecRaw, []byte("object bytes"))
	r := route.CompleteStub(stub, signer, c, 1024, cidx.CodecRaw)

	require.Equal(t, stub.ID, r.ID)
	require.Equal(t, stub.URL, r.URL)
	require.NoError(t, route.VerifyRoute(r))
}
