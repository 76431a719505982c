// Package route implements the Route/RouteStub data model of §3 and the
// builder/signature machinery of §4.2.
package route

import (
	"crypto/ed25519"
	"time"

	"github.com/google/uuid"

	"github.com/cidgate/cidgate/pkg/cidx"
)

// ProviderType tags the kind of backend a route resolves against. The set
// is extensible; azure, iroh and http are the three concrete backends this
// implementation ships.
type ProviderType string

const (
	ProviderTypeAzure ProviderType = "azure"
	ProviderTypeIroh  ProviderType = "iroh"
	ProviderTypeHTTP  ProviderType = "http"
)

// Route is a fully-resolved mapping from a CID to a concrete,
// provider-local locator, signed by the gateway's identity key.
type Route struct {
	ID           uuid.UUID
	CreatedAt    time.Time
	VerifiedAt   time.Time
	ProviderID   string
	ProviderType ProviderType
	URL          string
	Cid          cidx.Cid
	Size         uint64
	Multicodec   cidx.Codec
	Creator      ed25519.PublicKey
	Signature    []byte
}

// Stub is a partial route: a backend location whose content hash is not
// yet known. Size and Multicodec are optional because a backend listing
// may not expose either up front.
type Stub struct {
	ID           uuid.UUID
	CreatedAt    time.Time
	VerifiedAt   time.Time
	ProviderID   string
	ProviderType ProviderType
	URL          string
	Size         *uint64
	Multicodec   *cidx.Codec
}
