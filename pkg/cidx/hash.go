package cidx

import (
	"crypto/sha1"
	"crypto/sha256"
	"fmt"
	"hash"

	"github.com/multiformats/go-multihash"
	"lukechampine.com/blake3"
)

// HashCode is a multihash function code, as used by
// github.com/multiformats/go-multihash.
type HashCode uint64

const (
	HashSHA1   HashCode = multihash.SHA1
	HashSHA256 HashCode = multihash.SHA2_256
	HashBlake3 HashCode = multihash.BLAKE3
)

func (h HashCode) String() string {
	if name, ok := multihash.Codes[uint64(h)]; ok {
		return name
	}
	return "unknown"
}

// NewHasher returns a fresh hash.Hash for this CID's hash code, for
// streaming re-verification of content pulled from a provider. Only the
// three hash codes this gateway recognizes are supported.
func (c Cid) NewHasher() (hash.Hash, error) {
	code, err := c.HashCode()
	if err != nil {
		return nil, err
	}
	switch code {
	case HashSHA1:
		return sha1.New(), nil
	case HashSHA256:
		return sha256.New(), nil
	case HashBlake3:
		return blake3.New(32, nil), nil
	default:
		return nil, fmt.Errorf("unsupported hash code %s for verification", code)
	}
}
