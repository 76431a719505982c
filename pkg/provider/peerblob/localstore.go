package peerblob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"lukechampine.com/blake3"

	"github.com/cidgate/cidgate/pkg/cidx"
)

// LocalStore is a filesystem-backed blob store, tagging each stored
// object with the CID it was ingested under. It is used when a
// peer-blob provider runs as the authoritative copy rather than as a
// client of a remote peer.
type LocalStore struct {
	mu   sync.Mutex
	root string
}

// NewLocalStore opens (creating if needed) a directory-backed blob
// store.
func NewLocalStore(root string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating blob store directory: %w", err)
	}
	return &LocalStore{root: root}, nil
}

func (s *LocalStore) path(digest []byte) string {
	return filepath.Join(s.root, fmt.Sprintf("%x", digest))
}

// Put adds data to the store under c, rejecting any CID whose multihash
// code is not BLAKE3 (§4.4.2).
func (s *LocalStore) Put(ctx context.Context, c cidx.Cid, data io.Reader) error {
	code, err := c.HashCode()
	if err != nil {
		return fmt.Errorf("decoding cid multihash: %w", err)
	}
	if code != cidx.HashBlake3 {
		return fmt.Errorf("peerblob: local store only accepts blake3 cids, got %s", code)
	}
	digest, err := c.Digest()
	if err != nil {
		return fmt.Errorf("decoding cid digest: %w", err)
	}

	buf, err := io.ReadAll(data)
	if err != nil {
		return fmt.Errorf("reading put payload: %w", err)
	}
	sum := blake3.Sum256(buf)
	if !bytesEqual(sum[:], digest) {
		return fmt.Errorf("peerblob: payload does not hash to %s", c.String())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return os.WriteFile(s.path(digest), buf, 0o644)
}

// Get opens a previously-stored object by its BLAKE3 digest.
func (s *LocalStore) Get(ctx context.Context, digest []byte) (io.ReadCloser, error) {
	f, err := os.Open(s.path(digest))
	if err != nil {
		return nil, fmt.Errorf("opening local blob: %w", err)
	}
	return f, nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
