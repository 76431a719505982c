package httpgateway_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cidgate/cidgate/pkg/cidx"
	"github.com/cidgate/cidgate/pkg/provider/httpgateway"
)

func TestGetRoutesEmitsTwoOnSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p, err := httpgateway.New("gw-1", srv.URL)
	require.NoError(t, err)
	c := cidx.Blake3Raw(cidx.CodecDagPB, []byte("x"))

	routes, err := p.GetRoutes(context.Background(), c)
	require.NoError(t, err)
	require.Len(t, routes, 2)
	for _, r := range routes {
		require.Equal(t, "gw-1", r.ProviderID)
	}
}

func TestGetRoutesEmptyOnNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	p, err := httpgateway.New("gw-1", srv.URL)
	require.NoError(t, err)
	c := cidx.Blake3Raw(cidx.CodecDagPB, []byte("y"))

	routes, err := p.GetRoutes(context.Background(), c)
	require.NoError(t, err)
	require.Empty(t, routes)
}

func TestEligibilityDagCodecsOnly(t *testing.T) {
	p, err := httpgateway.New("gw-1", "https://example.test")
	require.NoError(t, err)
	rawCid := cidx.Blake3Raw(cidx.CodecRaw, []byte("z"))
	require.False(t, p.CidFilter().IsMatch(rawCid))

	dagCid := cidx.Blake3Raw(cidx.CodecDagCBOR, []byte("z"))
	require.True(t, p.CidFilter().IsMatch(dagCid))
}
