package objectstore_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cidgate/cidgate/pkg/provider/objectstore"
	"github.com/cidgate/cidgate/pkg/routestore"
	"github.com/cidgate/cidgate/testsupport"
)

type fakeClient struct {
	entries []objectstore.BlobEntry
	bodies  map[string][]byte
	puts    map[string][]byte
}

func (f *fakeClient) List(ctx context.Context) ([]objectstore.BlobEntry, error) {
	return f.entries, nil
}

func (f *fakeClient) Get(ctx context.Context, name string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.bodies[name])), nil
}

func (f *fakeClient) Put(ctx context.Context, name string, size int64, data io.Reader) error {
	if f.puts == nil {
		f.puts = make(map[string][]byte)
	}
	b, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	f.puts[name] = b
	return nil
}

func TestReindexDiscoversAndHashesBlobs(t *testing.T) {
	ctx := context.Background()
	store := testsupport.NewStore(t)
	signer := testsupport.NewSigner(t)

	client := &fakeClient{
		entries: []objectstore.BlobEntry{
			{Name: "a.bin", Size: 5},
			{Name: "b.bin", Size: 3},
		},
		bodies: map[string][]byte{
			"a.bin": []byte("hello"),
			"b.bin": []byte("hey"),
		},
	}

	p, err := objectstore.New(objectstore.Config{
		ID:        "obj-1",
		Account:   "acct",
		Container: "cont",
		Client:    client,
		Signer:    signer,
		Store:     store,
	})
	require.NoError(t, err)

	require.NoError(t, p.Reindex(ctx))

	routes, err := store.ListProviderRoutes(ctx, "obj-1", routestore.ListOptions{OrderBy: routestore.OrderByCreatedAt, Direction: routestore.Asc, Limit: -1})
	require.NoError(t, err)
	require.Len(t, routes, 2)

	stubs, err := store.ListProviderStubs(ctx, "obj-1", routestore.DefaultListOptions())
	require.NoError(t, err)
	require.Empty(t, stubs)
}

func TestReindexIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := testsupport.NewStore(t)
	signer := testsupport.NewSigner(t)

	client := &fakeClient{
		entries: []objectstore.BlobEntry{{Name: "a.bin", Size: 5}},
		bodies:  map[string][]byte{"a.bin": []byte("hello")},
	}

	p, err := objectstore.New(objectstore.Config{
		ID: "obj-1", Account: "acct", Container: "cont",
		Client: client, Signer: signer, Store: store,
	})
	require.NoError(t, err)

	require.NoError(t, p.Reindex(ctx))
	require.NoError(t, p.Reindex(ctx))

	routes, err := store.ListProviderRoutes(ctx, "obj-1", routestore.ListOptions{Limit: -1})
	require.NoError(t, err)
	require.Len(t, routes, 1)
}

func TestPutBlobRejectedWhenReadOnly(t *testing.T) {
	ctx := context.Background()
	store := testsupport.NewStore(t)
	signer := testsupport.NewSigner(t)

	p, err := objectstore.New(objectstore.Config{
		ID: "obj-1", Account: "acct", Container: "cont",
		Client: &fakeClient{}, Signer: signer, Store: store, Writeable: false,
	})
	require.NoError(t, err)

	c := testsupport.TestCid(t, 1)
	_, err = p.PutBlob(ctx, c, 3, bytes.NewReader([]byte("abc")))
	require.Error(t, err)
}
