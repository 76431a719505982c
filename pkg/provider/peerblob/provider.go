package peerblob

import (
	"context"
	"fmt"
	"io"

	"github.com/cidgate/cidgate/pkg/cidx"
	"github.com/cidgate/cidgate/pkg/cidx/filter"
	"github.com/cidgate/cidgate/pkg/provider"
	"github.com/cidgate/cidgate/pkg/route"
)

// eligibility restricts this provider to BLAKE3-hashed CIDs only, per
// §4.4.2.
func eligibility() filter.CidFilter {
	return filter.MultihashCodeFilter(filter.Eq(uint64(cidx.HashBlake3)))
}

// Provider implements the peer-blob backend of §4.4.2. Exactly one of
// Local or Remote is set: a local provider serves bytes from its own
// filesystem store, a remote provider proxies to another peer over the
// blobs protocol.
type Provider struct {
	id     string
	Local  *LocalStore
	Remote *RemotePeer
}

var (
	_ provider.Identity      = (*Provider)(nil)
	_ provider.RouteResolver = (*Provider)(nil)
	_ provider.BlobWriter    = (*Provider)(nil)
)

// NewLocal builds a provider backed by a local filesystem blob store.
func NewLocal(id string, store *LocalStore) *Provider {
	return &Provider{id: id, Local: store}
}

// NewRemote builds a provider proxying to a peer over libp2p.
func NewRemote(id string, peer *RemotePeer) *Provider {
	return &Provider{id: id, Remote: peer}
}

func (p *Provider) ProviderID() string              { return p.id }
func (p *Provider) ProviderType() route.ProviderType { return route.ProviderTypeIroh }
func (p *Provider) CidFilter() filter.CidFilter     { return eligibility() }

// GetBytes extracts the 32-byte BLAKE3 digest from the route's CID and
// fetches it from whichever backend this provider wraps.
func (p *Provider) GetBytes(ctx context.Context, r route.Route) (provider.Bytes, error) {
	digest, err := r.Cid.Digest()
	if err != nil {
		return provider.Bytes{}, fmt.Errorf("decoding route cid: %w", err)
	}

	switch {
	case p.Local != nil:
		rc, err := p.Local.Get(ctx, digest)
		if err != nil {
			return provider.Bytes{}, err
		}
		return provider.Bytes{ReadCloser: rc, Size: int64(r.Size)}, nil
	case p.Remote != nil:
		rc, err := p.Remote.GetBytes(ctx, digest)
		if err != nil {
			return provider.Bytes{}, err
		}
		return provider.Bytes{ReadCloser: rc, Size: int64(r.Size)}, nil
	default:
		return provider.Bytes{}, fmt.Errorf("peerblob provider %s has no backend configured", p.id)
	}
}

// PutBlob rejects non-BLAKE3 CIDs outright (both backends would reject
// them downstream, but failing fast avoids a wasted round trip for the
// remote case) then delegates to the configured backend.
func (p *Provider) PutBlob(ctx context.Context, c cidx.Cid, size uint64, data io.Reader) (string, error) {
	code, err := c.HashCode()
	if err != nil {
		return "", fmt.Errorf("decoding cid multihash: %w", err)
	}
	if code != cidx.HashBlake3 {
		return "", fmt.Errorf("peerblob: only blake3 cids are accepted, got %s", code)
	}

	switch {
	case p.Local != nil:
		if err := p.Local.Put(ctx, c, data); err != nil {
			return "", err
		}
		return c.String(), nil
	case p.Remote != nil:
		buf, err := io.ReadAll(data)
		if err != nil {
			return "", fmt.Errorf("buffering push payload: %w", err)
		}
		if err := p.Remote.PushBlob(ctx, c, buf); err != nil {
			return "", err
		}
		return c.String(), nil
	default:
		return "", fmt.Errorf("peerblob provider %s has no backend configured", p.id)
	}
}
