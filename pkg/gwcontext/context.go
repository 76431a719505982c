// Package gwcontext holds the gateway's shared runtime dependencies: the
// route index, the signing identity, and the auth service. It plays the
// role the teacher's per-domain Service/Params pairs play (e.g.
// pkg/services/blob.Service), collapsed into one struct because this
// gateway has a single bounded context rather than the teacher's several
// cooperating UCAN services.
package gwcontext

import (
	"crypto/ed25519"
	"fmt"

	"github.com/cidgate/cidgate/pkg/auth"
	"github.com/cidgate/cidgate/pkg/provider"
	"github.com/cidgate/cidgate/pkg/routestore"
)

// Context is the set of dependencies every gateway-api handler and every
// indexer tick needs. It is built once at startup and passed down by
// reference, matching the teacher's Params-struct wiring without pulling
// in an fx container for a single-process service.
type Context struct {
	Store     *routestore.Store
	Signer    ed25519.PrivateKey
	Auth      auth.Service
	Providers *provider.Registry
}

// New validates that all required dependencies are present and returns a
// ready-to-use Context.
func New(store *routestore.Store, signer ed25519.PrivateKey, authSvc auth.Service, providers *provider.Registry) (*Context, error) {
	if store == nil {
		return nil, fmt.Errorf("gwcontext: route store is required")
	}
	if len(signer) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("gwcontext: signing key must be %d bytes, got %d", ed25519.PrivateKeySize, len(signer))
	}
	if authSvc == nil {
		return nil, fmt.Errorf("gwcontext: auth service is required")
	}
	if providers == nil {
		return nil, fmt.Errorf("gwcontext: provider registry is required")
	}
	return &Context{Store: store, Signer: signer, Auth: authSvc, Providers: providers}, nil
}

// PublicKey returns the identity this gateway signs routes with.
func (c *Context) PublicKey() ed25519.PublicKey {
	pub, ok := c.Signer.Public().(ed25519.PublicKey)
	if !ok {
		panic("gwcontext: signer produced a non-ed25519 public key")
	}
	return pub
}
