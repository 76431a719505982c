// Package provider defines the capability-composition contract of §4.4:
// a provider is not a single interface but an open record of optional
// sub-interfaces, and callers branch on presence rather than on
// concrete type, matching the teacher's blobstore.Blobstore /
// blobstore.FileSystemer split (store/blobstore/interface.go) where a
// concrete store advertises extra capabilities (FileSystemer, PDPStore)
// beyond its base Blobstore contract.
package provider

import (
	"context"
	"io"

	"github.com/cidgate/cidgate/pkg/cidx"
	"github.com/cidgate/cidgate/pkg/cidx/filter"
	"github.com/cidgate/cidgate/pkg/route"
)

// ProviderType mirrors route.ProviderType; kept as a distinct alias so
// this package does not force every caller to import route just to name
// a type.
type ProviderType = route.ProviderType

// Identity is the mandatory capability every provider implements: a
// stable id, its backend kind, and the CID filter that decides
// eligibility for a given CID.
type Identity interface {
	ProviderID() string
	ProviderType() ProviderType
	CidFilter() filter.CidFilter
}

// IsEligible reports whether p's filter matches c, per §4.4
// "provider_is_eligible_for_cid".
func IsEligible(p Identity, c cidx.Cid) bool {
	return p.CidFilter().IsMatch(c)
}

// Reindexer is the background-discovery capability driven by the
// indexer loop of §4.5.
type Reindexer interface {
	Reindex(ctx context.Context) error
}

// Bytes is a streamed byte payload plus its declared length, returned by
// RouteResolver.GetBytes. Callers must Close it.
type Bytes struct {
	io.ReadCloser
	Size int64
}

// RouteResolver streams the bytes backing an already-indexed route.
type RouteResolver interface {
	GetBytes(ctx context.Context, r route.Route) (Bytes, error)
}

// BlobWriter accepts freshly-ingested content and returns the URL it was
// stored under.
type BlobWriter interface {
	PutBlob(ctx context.Context, c cidx.Cid, size uint64, data io.Reader) (string, error)
}

// SizeResolver is the optional capability for providers that can report
// an object's size without a full fetch.
type SizeResolver interface {
	GetSize(ctx context.Context, c cidx.Cid) (uint64, error)
}

// LiveRouteResolver is the optional capability for providers that
// answer a CID lookup per-request instead of from an indexed table —
// §4.4.3's HTTP-gateway provider being the only such backend. Its
// routes are synthesized on the spot and never land in routestore (§9
// Open Question 3 leaves that persistence question open); they still
// need to reach GET /v1/routes/{cid} and GET /v1/data/{cid} at request
// time, which this capability exists to make possible.
type LiveRouteResolver interface {
	GetRoutes(ctx context.Context, c cidx.Cid) ([]route.Route, error)
}

// Provider is satisfied by every concrete backend: Identity is required,
// the rest are probed for with the optional-capability interfaces below
// rather than demanded here, matching §4.4's "record of optional
// handles" framing.
type Provider interface {
	Identity
}

// AsReindexer, AsRouteResolver, AsBlobWriter and AsSizeResolver are the
// capability probes the gateway API and indexer use instead of branching
// on concrete type (§4.4's "open record; downstream code branches on
// presence rather than on type identity").
func AsReindexer(p Provider) (Reindexer, bool) {
	r, ok := p.(Reindexer)
	return r, ok
}

func AsRouteResolver(p Provider) (RouteResolver, bool) {
	r, ok := p.(RouteResolver)
	return r, ok
}

func AsBlobWriter(p Provider) (BlobWriter, bool) {
	w, ok := p.(BlobWriter)
	return w, ok
}

func AsSizeResolver(p Provider) (SizeResolver, bool) {
	s, ok := p.(SizeResolver)
	return s, ok
}

func AsLiveRouteResolver(p Provider) (LiveRouteResolver, bool) {
	r, ok := p.(LiveRouteResolver)
	return r, ok
}
