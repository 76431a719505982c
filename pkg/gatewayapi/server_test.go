package gatewayapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cidgate/cidgate/pkg/auth"
	"github.com/cidgate/cidgate/pkg/cidx"
	"github.com/cidgate/cidgate/pkg/cidx/filter"
	"github.com/cidgate/cidgate/pkg/gatewayapi"
	"github.com/cidgate/cidgate/pkg/gwcontext"
	"github.com/cidgate/cidgate/pkg/provider"
	"github.com/cidgate/cidgate/pkg/route"
	"github.com/cidgate/cidgate/testsupport"
)

type memProvider struct {
	id    string
	blobs map[string][]byte
}

func newMemProvider(id string) *memProvider {
	return &memProvider{id: id, blobs: make(map[string][]byte)}
}

func (m *memProvider) ProviderID() string               { return m.id }
func (m *memProvider) ProviderType() route.ProviderType  { return route.ProviderTypeHTTP }
func (m *memProvider) CidFilter() filter.CidFilter       { return filter.None() }

func (m *memProvider) PutBlob(ctx context.Context, c cidx.Cid, size uint64, data io.Reader) (string, error) {
	b, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	m.blobs[c.String()] = b
	return "", nil
}

func (m *memProvider) GetBytes(ctx context.Context, r route.Route) (provider.Bytes, error) {
	b, ok := m.blobs[r.Cid.String()]
	if !ok {
		return provider.Bytes{}, io.EOF
	}
	return provider.Bytes{ReadCloser: io.NopCloser(bytes.NewReader(b)), Size: int64(len(b))}, nil
}

// liveProvider is a fake stand-in for an httpgateway-style provider: it
// never stores routes, only synthesizes them on demand via GetRoutes,
// and serves the matching bytes from GetBytes.
type liveProvider struct {
	id    string
	blobs map[string][]byte
}

func newLiveProvider(id string) *liveProvider {
	return &liveProvider{id: id, blobs: make(map[string][]byte)}
}

func (p *liveProvider) ProviderID() string              { return p.id }
func (p *liveProvider) ProviderType() route.ProviderType { return route.ProviderTypeHTTP }
func (p *liveProvider) CidFilter() filter.CidFilter      { return filter.None() }

func (p *liveProvider) GetRoutes(ctx context.Context, c cidx.Cid) ([]route.Route, error) {
	if _, ok := p.blobs[c.String()]; !ok {
		return nil, nil
	}
	return []route.Route{{
		ProviderID:   p.id,
		ProviderType: route.ProviderTypeHTTP,
		URL:          "live://" + c.String(),
		Cid:          c,
		Multicodec:   c.Codec(),
	}}, nil
}

func (p *liveProvider) GetBytes(ctx context.Context, r route.Route) (provider.Bytes, error) {
	b, ok := p.blobs[r.Cid.String()]
	if !ok {
		return provider.Bytes{}, io.EOF
	}
	return provider.Bytes{ReadCloser: io.NopCloser(bytes.NewReader(b)), Size: int64(len(b))}, nil
}

var (
	_ provider.Identity          = (*liveProvider)(nil)
	_ provider.LiveRouteResolver = (*liveProvider)(nil)
	_ provider.RouteResolver     = (*liveProvider)(nil)
)

func newTestServer(t *testing.T, providers ...provider.Provider) (*gatewayapi.Server, *gwcontext.Context) {
	t.Helper()
	store := testsupport.NewStore(t)
	signer := testsupport.NewSigner(t)
	reg, err := provider.NewRegistry(providers...)
	require.NoError(t, err)

	gwCtx, err := gwcontext.New(store, signer, auth.None(), reg)
	require.NoError(t, err)

	return gatewayapi.NewServer(gwCtx, nil), gwCtx
}

func TestIngestAndResolveRoundTrip(t *testing.T) {
	mp := newMemProvider("mem-1")
	srvWrapper, _ := newTestServer(t, mp)

	srv := httptest.NewServer(srvWrapper.Handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/v1/data", "application/octet-stream", bytes.NewReader([]byte("hello gateway")))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var ingestResp struct {
		Cid      string `json:"cid"`
		Size     uint64 `json:"size"`
		Location string `json:"location"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ingestResp))
	require.NotEmpty(t, ingestResp.Cid)
	require.Equal(t, uint64(len("hello gateway")), ingestResp.Size)

	getResp, err := http.Get(srv.URL + "/v1/data/" + ingestResp.Cid)
	require.NoError(t, err)
	defer getResp.Body.Close()
	require.Equal(t, http.StatusOK, getResp.StatusCode)

	body, err := io.ReadAll(getResp.Body)
	require.NoError(t, err)
	require.Equal(t, "hello gateway", string(body))
}

func TestIngestWithNoEligibleWriterReturns503(t *testing.T) {
	srvWrapper, _ := newTestServer(t)
	srv := httptest.NewServer(srvWrapper.Handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/v1/data", "application/octet-stream", bytes.NewReader([]byte("x")))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestIngestWithUnsupportedContentTypeReturns415(t *testing.T) {
	mp := newMemProvider("mem-1")
	srvWrapper, _ := newTestServer(t, mp)
	srv := httptest.NewServer(srvWrapper.Handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/v1/data", "image/png", bytes.NewReader([]byte("x")))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
}

func TestGetUnknownCidReturns404(t *testing.T) {
	mp := newMemProvider("mem-1")
	srvWrapper, _ := newTestServer(t, mp)
	srv := httptest.NewServer(srvWrapper.Handler())
	defer srv.Close()

	unknown := testsupport.TestCid(t, 99)
	resp, err := http.Get(srv.URL + "/v1/data/" + unknown.String())
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListRoutesRejectsInvalidDirection(t *testing.T) {
	mp := newMemProvider("mem-1")
	srvWrapper, _ := newTestServer(t, mp)
	srv := httptest.NewServer(srvWrapper.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/v1/routes?direction=sideways")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRoutesForCidIncludesLiveSynthesizedRoute(t *testing.T) {
	lp := newLiveProvider("gw-1")
	c := testsupport.TestCid(t, 7)
	lp.blobs[c.String()] = []byte("synthesized")

	srvWrapper, _ := newTestServer(t, lp)
	srv := httptest.NewServer(srvWrapper.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/v1/routes/" + c.String())
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Routes []struct {
			ProviderID string `json:"provider_id"`
			URL        string `json:"url"`
		} `json:"routes"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Routes, 1)
	require.Equal(t, "gw-1", body.Routes[0].ProviderID)
	require.Equal(t, "live://"+c.String(), body.Routes[0].URL)
}

// TestGetDataResolvesThroughLiveRouteResolver proves a LiveRouteResolver
// capable provider is actually consulted by GET /v1/data/{cid} — the
// route it synthesizes never lands in the DB-backed store, so without
// this wiring the request would 404 even though the provider holds the
// bytes.
func TestGetDataResolvesThroughLiveRouteResolver(t *testing.T) {
	lp := newLiveProvider("gw-1")
	content := []byte("fetched live")
	c := cidx.Blake3Raw(cidx.CodecRaw, content)
	lp.blobs[c.String()] = content

	srvWrapper, _ := newTestServer(t, lp)
	srv := httptest.NewServer(srvWrapper.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/v1/data/" + c.String())
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "fetched live", string(body))
}

func TestListProviders(t *testing.T) {
	mp := newMemProvider("mem-1")
	srvWrapper, _ := newTestServer(t, mp)
	srv := httptest.NewServer(srvWrapper.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/v1/providers")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var views []struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&views))
	require.Len(t, views, 1)
	require.Equal(t, "mem-1", views[0].ID)
}
