package objectstore

import (
	"context"
	"crypto/ed25519"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-multierror"
	logging "github.com/ipfs/go-log/v2"
	"lukechampine.com/blake3"

	"github.com/cidgate/cidgate/pkg/cidx"
	"github.com/cidgate/cidgate/pkg/cidx/filter"
	"github.com/cidgate/cidgate/pkg/provider"
	"github.com/cidgate/cidgate/pkg/route"
	"github.com/cidgate/cidgate/pkg/routestore"
)

var log = logging.Logger("provider/objectstore")

// Provider implements the Azure-like object-store backend of §4.4.1.
type Provider struct {
	id        string
	account   string
	container string
	client    Client
	blobs     BlobFilter
	writeable bool
	signer    ed25519.PrivateKey
	store     *routestore.Store
}

var (
	_ provider.Identity      = (*Provider)(nil)
	_ provider.Reindexer     = (*Provider)(nil)
	_ provider.RouteResolver = (*Provider)(nil)
)

// Config gathers what New needs to build a Provider.
type Config struct {
	ID        string
	Account   string
	Container string
	Client    Client
	Filter    BlobFilter
	Writeable bool
	Signer    ed25519.PrivateKey
	Store     *routestore.Store
}

// New builds an object-store provider. Client is an interface so tests
// can supply a fake container without a live Azure account.
func New(cfg Config) (*Provider, error) {
	if cfg.Filter == nil {
		cfg.Filter = All()
	}
	return &Provider{
		id:        cfg.ID,
		account:   cfg.Account,
		container: cfg.Container,
		client:    cfg.Client,
		blobs:     cfg.Filter,
		writeable: cfg.Writeable,
		signer:    cfg.Signer,
		store:     cfg.Store,
	}, nil
}

func (p *Provider) ProviderID() string              { return p.id }
func (p *Provider) ProviderType() route.ProviderType { return route.ProviderTypeAzure }
func (p *Provider) CidFilter() filter.CidFilter     { return filter.None() }

// Reindex runs the discover-then-hash cycle of §4.4.1.
func (p *Provider) Reindex(ctx context.Context) error {
	if err := p.discover(ctx); err != nil {
		return fmt.Errorf("discover: %w", err)
	}
	if err := p.hash(ctx); err != nil {
		return fmt.Errorf("hash: %w", err)
	}
	return nil
}

// discover lists the container, applies the blob filter, and seeds a
// stub for every match not already indexed under this provider. One
// bad entry does not abort the scan: failures are collected and
// returned together once every entry has been tried.
func (p *Provider) discover(ctx context.Context) error {
	entries, err := p.client.List(ctx)
	if err != nil {
		return fmt.Errorf("listing container: %w", err)
	}

	var errs *multierror.Error
	for _, entry := range entries {
		if !p.blobs.Matches(entry.Name, entry.Size) {
			continue
		}
		url := URLFor(p.account, p.container, entry.Name)

		existing, err := p.store.RoutesForURL(ctx, url)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("checking existing routes for %s: %w", url, err))
			continue
		}
		if len(existing) > 0 {
			continue
		}

		size := entry.Size
		codec := cidx.CodecRaw
		stub, err := route.NewBuilder(p.id, route.ProviderTypeAzure).
			WithURL(url).
			WithSize(size).
			WithMulticodec(codec).
			BuildStub()
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("building stub for %s: %w", url, err))
			continue
		}

		if err := p.store.InsertStub(ctx, stub); err != nil {
			if err == routestore.ErrAlreadyIndexed {
				continue
			}
			errs = multierror.Append(errs, fmt.Errorf("inserting stub for %s: %w", url, err))
		}
	}
	return errs.ErrorOrNil()
}

// hash walks this provider's pending stubs smallest-first and promotes
// each into a signed Route by streaming and hashing its bytes.
func (p *Provider) hash(ctx context.Context) error {
	opts := routestore.ListOptions{OrderBy: routestore.OrderBySize, Direction: routestore.Asc, Limit: -1}
	stubs, err := p.store.ListProviderStubs(ctx, p.id, opts)
	if err != nil {
		return fmt.Errorf("listing stubs: %w", err)
	}

	var errs *multierror.Error
	for _, stub := range stubs {
		name, err := blobNameFromURL(stub.URL)
		if err != nil {
			log.Warnf("skipping stub %s: %s", stub.ID, err)
			continue
		}

		body, err := p.client.Get(ctx, name)
		if err != nil {
			log.Warnf("skipping stub %s (fetching %s): %s", stub.ID, name, err)
			continue
		}

		hasher := blake3.New(32, nil)
		size, err := io.Copy(hasher, body)
		body.Close()
		if err != nil {
			log.Warnf("skipping stub %s (hashing %s): %s", stub.ID, name, err)
			continue
		}

		var digest [32]byte
		copy(digest[:], hasher.Sum(nil))
		c, err := cidx.WrapBlake3(cidx.CodecRaw, digest)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("wrapping digest for %s: %w", name, err))
			continue
		}

		r := route.CompleteStub(stub, p.signer, c, uint64(size), cidx.CodecRaw)
		if err := p.store.CompleteStub(ctx, r); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("completing stub %s: %w", stub.ID, err))
		}
	}
	return errs.ErrorOrNil()
}

// GetBytes extracts the blob name from the route's URL and streams it.
func (p *Provider) GetBytes(ctx context.Context, r route.Route) (provider.Bytes, error) {
	name, err := blobNameFromURL(r.URL)
	if err != nil {
		return provider.Bytes{}, err
	}
	body, err := p.client.Get(ctx, name)
	if err != nil {
		return provider.Bytes{}, fmt.Errorf("fetching %s: %w", name, err)
	}
	return provider.Bytes{ReadCloser: body, Size: int64(r.Size)}, nil
}

// PutBlob writes data under the object name cid.String(), provided this
// provider was configured writeable.
func (p *Provider) PutBlob(ctx context.Context, c cidx.Cid, size uint64, data io.Reader) (string, error) {
	if !p.writeable {
		return "", fmt.Errorf("objectstore provider %s is read-only", p.id)
	}
	name := c.String()
	if err := p.client.Put(ctx, name, int64(size), data); err != nil {
		return "", fmt.Errorf("writing blob %s: %w", name, err)
	}
	return URLFor(p.account, p.container, name), nil
}

var _ provider.BlobWriter = (*Provider)(nil)

// blobNameFromURL extracts the blob name (everything after
// {account}.blob.core.windows.net/{container}/) from a route URL,
// rejecting malformed URLs per §4.4.1.
func blobNameFromURL(url string) (string, error) {
	// https: / "" / {account}.blob.core.windows.net / {container} / {name}
	parts := strings.SplitN(url, "/", 5)
	if len(parts) < 5 {
		return "", fmt.Errorf("malformed object-store url: %s", url)
	}
	return parts[4], nil
}
