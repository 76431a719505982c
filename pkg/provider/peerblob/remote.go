package peerblob

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	"github.com/libp2p/go-libp2p"
	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/network"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/multiformats/go-multiaddr"

	"github.com/cidgate/cidgate/pkg/cidx"
)

// ProtocolID identifies the blobs protocol this gateway's peer-blob
// provider speaks, standing in for Iroh's "blobs" ALPN.
const ProtocolID = "/cidgate/blobs/1.0.0"

type opcode byte

const (
	opGet  opcode = 1
	opPush opcode = 2
)

// RemotePeer is a libp2p-backed client to a single peer's blob
// protocol handler, opening (and reusing) one connection.
type RemotePeer struct {
	host host.Host

	mu       sync.Mutex
	addrInfo peer.AddrInfo
}

// DialPeer creates a libp2p host and resolves addrInfo from a multiaddr
// string that ends in a /p2p/<peer-id> component. Node-ids, node-tickets
// and blob-tickets are not parsed; any other string is an error.
func DialPeer(ctx context.Context, addr string) (*RemotePeer, error) {
	h, err := libp2p.New()
	if err != nil {
		return nil, fmt.Errorf("creating libp2p host: %w", err)
	}

	maddr, err := multiaddr.NewMultiaddr(addr)
	if err != nil {
		h.Close()
		return nil, fmt.Errorf("parsing peer address %q: %w", addr, err)
	}
	info, err := peer.AddrInfoFromP2pAddr(maddr)
	if err != nil {
		h.Close()
		return nil, fmt.Errorf("resolving peer info from %q: %w", addr, err)
	}

	return &RemotePeer{host: h, addrInfo: *info}, nil
}

func (p *RemotePeer) stream(ctx context.Context) (network.Stream, error) {
	if err := p.host.Connect(ctx, p.addrInfo); err != nil {
		return nil, fmt.Errorf("connecting to peer %s: %w", p.addrInfo.ID, err)
	}
	return p.host.NewStream(ctx, p.addrInfo.ID, ProtocolID)
}

// GetBytes requests the verified-streaming leaf-chunked payload for
// digest over the blobs protocol and returns the validated plaintext.
func (p *RemotePeer) GetBytes(ctx context.Context, digest []byte) (io.ReadCloser, error) {
	s, err := p.stream(ctx)
	if err != nil {
		return nil, err
	}

	rw := bufio.NewReadWriter(bufio.NewReader(s), bufio.NewWriter(s))
	if err := writeRequest(rw, opGet, digest); err != nil {
		s.Close()
		return nil, fmt.Errorf("sending get request: %w", err)
	}
	if err := rw.Flush(); err != nil {
		s.Close()
		return nil, fmt.Errorf("flushing get request: %w", err)
	}

	plain, err := Decode(rw)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("decoding verified stream: %w", err)
	}
	return &streamReader{Reader: plain, closer: s}, nil
}

// PushBlob sends a push request for cid (all chunk ranges) followed by
// the leaf-chunked encoding of data, and waits for a one-byte
// acknowledgment.
func (p *RemotePeer) PushBlob(ctx context.Context, c cidx.Cid, data []byte) error {
	digest, err := c.Digest()
	if err != nil {
		return fmt.Errorf("decoding cid digest: %w", err)
	}

	s, err := p.stream(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	rw := bufio.NewReadWriter(bufio.NewReader(s), bufio.NewWriter(s))
	if err := writeRequest(rw, opPush, digest); err != nil {
		return fmt.Errorf("sending push request: %w", err)
	}
	if err := Encode(rw, data); err != nil {
		return fmt.Errorf("encoding push payload: %w", err)
	}
	if err := rw.Flush(); err != nil {
		return fmt.Errorf("flushing push: %w", err)
	}

	ack, err := rw.ReadByte()
	if err != nil {
		return fmt.Errorf("reading push ack: %w", err)
	}
	if ack != 1 {
		return fmt.Errorf("peerblob: peer rejected push (ack=%d)", ack)
	}
	return nil
}

// Close shuts down the underlying libp2p host.
func (p *RemotePeer) Close() error {
	return p.host.Close()
}

func writeRequest(w io.Writer, op opcode, digest []byte) error {
	if _, err := w.Write([]byte{byte(op)}); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, uint32(len(digest))); err != nil {
		return err
	}
	_, err := w.Write(digest)
	return err
}

type streamReader struct {
	io.Reader
	closer io.Closer
}

func (r *streamReader) Close() error { return r.closer.Close() }
