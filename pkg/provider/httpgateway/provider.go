// Package httpgateway implements the IPFS-like HTTP-gateway provider of
// §4.4.3: a stateless per-request HEAD probe against a public gateway,
// with no DB persistence. A single HEAD request per lookup is the kind
// of narrow, one-shot use the teacher and the rest of the example pack
// reach for net/http directly rather than a client library for (see
// SPEC_FULL.md §4.4.3); the JWKS fetch in pkg/auth does the same.
package httpgateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/cidgate/cidgate/lib"
	"github.com/cidgate/cidgate/pkg/cidx"
	"github.com/cidgate/cidgate/pkg/cidx/filter"
	"github.com/cidgate/cidgate/pkg/provider"
	"github.com/cidgate/cidgate/pkg/route"
)

func eligibility() filter.CidFilter {
	return filter.CodecFilter(filter.CodeOr(
		filter.Eq(uint64(cidx.CodecDagPB)),
		filter.Eq(uint64(cidx.CodecDagCBOR)),
	))
}

// Provider probes a single public IPFS gateway for a CID's presence,
// synthesizing routes on the fly rather than persisting them.
type Provider struct {
	id         string
	gatewayURL string
	client     *http.Client
}

var (
	_ provider.Identity          = (*Provider)(nil)
	_ provider.LiveRouteResolver = (*Provider)(nil)
)

// New builds an HTTP-gateway provider against the given base gateway
// URL (e.g. "https://ipfs.io"), trimming any trailing slash so the
// "/ipfs/{cid}" join below never ends up with a doubled separator.
func New(id, gatewayURL string) (*Provider, error) {
	u, err := lib.ParseAndNormalizeURL(gatewayURL)
	if err != nil {
		return nil, fmt.Errorf("http-gateway provider %q: %w", id, err)
	}
	return &Provider{
		id:         id,
		gatewayURL: u.String(),
		client:     &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func (p *Provider) ProviderID() string               { return p.id }
func (p *Provider) ProviderType() route.ProviderType { return route.ProviderTypeHTTP }
func (p *Provider) CidFilter() filter.CidFilter      { return eligibility() }

// GetRoutes issues a HEAD to {gateway}/ipfs/{cid} and, on 200, returns
// two synthesized routes for the CID (an ipfs-path route and a direct
// URL route), both stamped with this provider's id. On any non-200 it
// returns no routes, per §4.4.3.
func (p *Provider) GetRoutes(ctx context.Context, c cidx.Cid) ([]route.Route, error) {
	url := fmt.Sprintf("%s/ipfs/%s", p.gatewayURL, c.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building head request: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("probing gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	now := time.Now().UTC()
	ipfsRoute := route.Route{
		ID:           uuid.New(),
		CreatedAt:    now,
		VerifiedAt:   now,
		ProviderID:   p.id,
		ProviderType: route.ProviderTypeHTTP,
		URL:          fmt.Sprintf("ipfs://%s", c.String()),
		Cid:          c,
		Multicodec:   c.Codec(),
	}
	urlRoute := route.Route{
		ID:           uuid.New(),
		CreatedAt:    now,
		VerifiedAt:   now,
		ProviderID:   p.id,
		ProviderType: route.ProviderTypeHTTP,
		URL:          url,
		Cid:          c,
		Multicodec:   c.Codec(),
	}
	return []route.Route{ipfsRoute, urlRoute}, nil
}

// GetBytes streams the body of {gateway}/ipfs/{cid} for the given route
// URL directly, since this provider answers per-request rather than
// indexing.
func (p *Provider) GetBytes(ctx context.Context, r route.Route) (provider.Bytes, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL, nil)
	if err != nil {
		return provider.Bytes{}, fmt.Errorf("building get request: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return provider.Bytes{}, fmt.Errorf("fetching from gateway: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return provider.Bytes{}, fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}
	return provider.Bytes{ReadCloser: resp.Body, Size: resp.ContentLength}, nil
}

var _ provider.RouteResolver = (*Provider)(nil)
