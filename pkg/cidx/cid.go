// Package cidx wraps github.com/ipfs/go-cid and
// github.com/multiformats/go-multihash with the CID/multihash conventions
// this gateway needs: v1-only CIDs, a small fixed set of recognized codecs
// and hash codes, and base32 string rendering.
package cidx

import (
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
	"lukechampine.com/blake3"
)

// Cid is a content identifier: version, codec, and multihash.
type Cid struct {
	inner cid.Cid
}

// ErrParse is returned when a string does not decode as a valid CID.
type ErrParse struct {
	Input string
	Err   error
}

func (e *ErrParse) Error() string {
	return fmt.Sprintf("parsing cid %q: %s", e.Input, e.Err)
}

func (e *ErrParse) Unwrap() error { return e.Err }

// New builds a v1 CID from a codec tag and a raw hash digest under the
// given multihash code.
func New(codec Codec, hashCode HashCode, digest []byte) (Cid, error) {
	mh, err := multihash.Encode(digest, uint64(hashCode))
	if err != nil {
		return Cid{}, fmt.Errorf("encoding multihash: %w", err)
	}
	return Cid{inner: cid.NewCidV1(uint64(codec), mh)}, nil
}

// WrapBlake3 wraps a 32-byte BLAKE3 digest as a v1 CID under the given
// codec. This is the construction used by every provider in this system
// that hashes content with BLAKE3 (the object-store and peer-blob
// providers).
func WrapBlake3(codec Codec, digest [32]byte) (Cid, error) {
	return New(codec, HashBlake3, digest[:])
}

// Blake3Raw computes the BLAKE3 digest of data and wraps it as a v1 CID
// under the given codec. This is the ingestion-path construction of §4.6.
func Blake3Raw(codec Codec, data []byte) Cid {
	digest := blake3.Sum256(data)
	c, err := WrapBlake3(codec, digest)
	if err != nil {
		// WrapBlake3 only fails if multihash.Encode rejects a 32-byte
		// digest under a registered code, which cannot happen for BLAKE3.
		panic(fmt.Sprintf("wrapping blake3 digest: %s", err))
	}
	return c
}

// Parse decodes a base-encoded CID string (typically base32, per §3).
func Parse(s string) (Cid, error) {
	c, err := cid.Decode(s)
	if err != nil {
		return Cid{}, &ErrParse{Input: s, Err: err}
	}
	return Cid{inner: c}, nil
}

// FromBytes wraps a raw, already-decoded go-cid.Cid. Used at the
// persistence boundary where routestore decodes stored CID bytes.
func FromBytes(b []byte) (Cid, error) {
	c, err := cid.Cast(b)
	if err != nil {
		return Cid{}, fmt.Errorf("casting cid bytes: %w", err)
	}
	return Cid{inner: c}, nil
}

// String renders the CID as a base32 string (the default encoding for
// CIDv1, matching §3's "CIDs render as base32 strings").
func (c Cid) String() string {
	return c.inner.String()
}

// Bytes returns the raw binary encoding, used for persistence.
func (c Cid) Bytes() []byte {
	return c.inner.Bytes()
}

// Codec returns the CID's multicodec tag.
func (c Cid) Codec() Codec {
	return Codec(c.inner.Type())
}

// Multihash returns the CID's multihash.
func (c Cid) Multihash() multihash.Multihash {
	return c.inner.Hash()
}

// HashCode returns the multihash function code used by this CID.
func (c Cid) HashCode() (HashCode, error) {
	decoded, err := multihash.Decode(c.inner.Hash())
	if err != nil {
		return 0, fmt.Errorf("decoding multihash: %w", err)
	}
	return HashCode(decoded.Code), nil
}

// Digest returns the raw hash digest bytes (without the multihash
// code/length prefix).
func (c Cid) Digest() ([]byte, error) {
	decoded, err := multihash.Decode(c.inner.Hash())
	if err != nil {
		return nil, fmt.Errorf("decoding multihash: %w", err)
	}
	return decoded.Digest, nil
}

// Equals reports whether two CIDs are identical.
func (c Cid) Equals(other Cid) bool {
	return c.inner.Equals(other.inner)
}

// IsUndef reports whether this is the zero-value CID.
func (c Cid) IsUndef() bool {
	return !c.inner.Defined()
}
