package peerblob

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	data := bytes.Repeat([]byte("x"), LeafSize*2+17)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, data))

	r, err := Decode(&buf)
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, data, got)
}

func TestEncodeDecodeEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, nil))

	r, err := Decode(&buf)
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestDecodeDetectsTamperedLeaf(t *testing.T) {
	data := bytes.Repeat([]byte("y"), LeafSize+5)
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, data))

	raw := buf.Bytes()
	// Flip a byte inside the first leaf's body (past the 4-byte count and
	// the 2*32-byte digest header).
	raw[4+2*32+10] ^= 0xFF

	r, err := Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	_, err = io.ReadAll(r)
	require.ErrorIs(t, err, ErrLeafMismatch)
}
