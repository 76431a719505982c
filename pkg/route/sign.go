package route

import (
	"crypto/ed25519"
	"encoding/binary"
	"fmt"

	"github.com/cidgate/cidgate/pkg/cidx"
)

// encode produces the canonical, deterministic byte encoding of
// (cid, size, url, codec) that is signed and later re-verified. Fields are
// length-prefixed in declared order; this is the wire-format version
// frozen by §9 "Signature completeness".
//
// version 1: the four fields in order, each as a uint32(le) length prefix
// followed by its bytes; no field count is written. size and codec are encoded as
// 8-byte little-endian integers for a fixed-width, unambiguous field.
func encode(c cidx.Cid, size uint64, url string, codec cidx.Codec) []byte {
	cidBytes := c.Bytes()
	urlBytes := []byte(url)

	buf := make([]byte, 0, 4+4+len(cidBytes)+4+8+4+len(urlBytes)+4+8)

	putField := func(b []byte) {
		var lenPrefix [4]byte
		binary.LittleEndian.PutUint32(lenPrefix[:], uint32(len(b)))
		buf = append(buf, lenPrefix[:]...)
		buf = append(buf, b...)
	}

	var sizeBytes, codecBytes [8]byte
	binary.LittleEndian.PutUint64(sizeBytes[:], size)
	binary.LittleEndian.PutUint64(codecBytes[:], uint64(codec))

	putField(cidBytes)
	putField(sizeBytes[:])
	putField(urlBytes)
	putField(codecBytes[:])

	return buf
}

// Sign produces a deterministic signature over (cid, size, url, codec)
// under the given ed25519 private key, per §4.2.
func Sign(signer ed25519.PrivateKey, c cidx.Cid, size uint64, url string, codec cidx.Codec) []byte {
	return ed25519.Sign(signer, encode(c, size, url, codec))
}

// Verify checks a route's signature against its recomputed encoding.
func Verify(creator ed25519.PublicKey, c cidx.Cid, size uint64, url string, codec cidx.Codec, signature []byte) error {
	if len(creator) != ed25519.PublicKeySize {
		return fmt.Errorf("invalid creator public key length %d", len(creator))
	}
	if !ed25519.Verify(creator, encode(c, size, url, codec), signature) {
		return ErrSignatureInvalid
	}
	return nil
}

// VerifyRoute re-verifies a fully-built Route's signature under its own
// Creator field.
func VerifyRoute(r Route) error {
	return Verify(r.Creator, r.Cid, r.Size, r.URL, r.Multicodec, r.Signature)
}
