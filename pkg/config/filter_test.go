package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cidgate/cidgate/pkg/cidx"
)

func TestCidFilterConfig_ToCidFilter(t *testing.T) {
	blake3Cid := cidx.Blake3Raw(cidx.CodecRaw, []byte("hello"))

	t.Run("zero value matches everything", func(t *testing.T) {
		cf, err := CidFilterConfig{}.ToCidFilter()
		require.NoError(t, err)
		assert.True(t, cf.IsMatch(blake3Cid))
	})

	t.Run("multihash_code restricts to blake3", func(t *testing.T) {
		cfg := CidFilterConfig{
			Kind: "multihash_code",
			Code: &CodeFilterConfig{Kind: "eq", Code: 0x1e},
		}
		cf, err := cfg.ToCidFilter()
		require.NoError(t, err)
		assert.True(t, cf.IsMatch(blake3Cid))

		other := CidFilterConfig{Kind: "multihash_code", Code: &CodeFilterConfig{Kind: "eq", Code: 0x12}}
		cf2, err := other.ToCidFilter()
		require.NoError(t, err)
		assert.False(t, cf2.IsMatch(blake3Cid))
	})

	t.Run("not negates", func(t *testing.T) {
		inner := CidFilterConfig{Kind: "multihash_code", Code: &CodeFilterConfig{Kind: "eq", Code: 0x1e}}
		cfg := CidFilterConfig{Kind: "not", Not: &inner}
		cf, err := cfg.ToCidFilter()
		require.NoError(t, err)
		assert.False(t, cf.IsMatch(blake3Cid))
	})

	t.Run("unknown kind errors", func(t *testing.T) {
		_, err := CidFilterConfig{Kind: "bogus"}.ToCidFilter()
		assert.Error(t, err)
	})
}

func TestBlobFilterConfig_ToBlobFilter(t *testing.T) {
	t.Run("zero value matches everything", func(t *testing.T) {
		bf, err := BlobFilterConfig{}.ToBlobFilter()
		require.NoError(t, err)
		assert.True(t, bf.Matches("anything.bin", 10))
	})

	t.Run("file_ext filters by suffix", func(t *testing.T) {
		bf, err := BlobFilterConfig{Kind: "file_ext", Ext: ".car"}.ToBlobFilter()
		require.NoError(t, err)
		assert.True(t, bf.Matches("data.car", 10))
		assert.False(t, bf.Matches("data.bin", 10))
	})

	t.Run("and combines filters", func(t *testing.T) {
		cfg := BlobFilterConfig{
			Kind: "and",
			All: []BlobFilterConfig{
				{Kind: "directory", Prefix: "blobs/"},
				{Kind: "file_ext", Ext: ".car"},
			},
		}
		bf, err := cfg.ToBlobFilter()
		require.NoError(t, err)
		assert.True(t, bf.Matches("blobs/a.car", 10))
		assert.False(t, bf.Matches("other/a.car", 10))
		assert.False(t, bf.Matches("blobs/a.bin", 10))
	})
}
