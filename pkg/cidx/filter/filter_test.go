package filter_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cidgate/cidgate/pkg/cidx"
	"github.com/cidgate/cidgate/pkg/cidx/filter"
)

func blake3RawCid(t *testing.T) cidx.Cid {
	t.Helper()
	return cidx.Blake3Raw(cidx.CodecRaw, []byte("filter algebra test data"))
}

func sha256DagCBORCid(t *testing.T) cidx.Cid {
	t.Helper()
	c, err := cidx.New(cidx.CodecDagCBOR, cidx.HashSHA256, make([]byte, 32))
	require.NoError(t, err)
	return c
}

func TestMultihashCodeFilter(t *testing.T) {
	c := blake3RawCid(t)

	require.True(t, filter.MultihashCodeFilter(filter.Eq(uint64(cidx.HashBlake3))).IsMatch(c))
	require.False(t, filter.MultihashCodeFilter(filter.Eq(uint64(cidx.HashSHA256))).IsMatch(c))
}

func TestCodecFilter(t *testing.T) {
	c := sha256DagCBORCid(t)

	require.True(t, filter.CodecFilter(filter.Eq(uint64(cidx.CodecDagCBOR))).IsMatch(c))
	require.False(t, filter.CodecFilter(filter.Eq(uint64(cidx.CodecRaw))).IsMatch(c))
}

func TestNoneMatchesEverything(t *testing.T) {
	require.True(t, filter.None().IsMatch(blake3RawCid(t)))
	require.True(t, filter.None().IsMatch(sha256DagCBORCid(t)))
}

func TestEmptyAndIsVacuouslyTrue(t *testing.T) {
	require.True(t, filter.And().IsMatch(blake3RawCid(t)))
}

func TestEmptyOrIsVacuouslyFalse(t *testing.T) {
	require.False(t, filter.Or().IsMatch(blake3RawCid(t)))
}

func TestBooleanAlgebra(t *testing.T) {
	c := blake3RawCid(t)

	isBlake3 := filter.MultihashCodeFilter(filter.Eq(uint64(cidx.HashBlake3)))
	isSHA256 := filter.MultihashCodeFilter(filter.Eq(uint64(cidx.HashSHA256)))

	and := isBlake3.And(isSHA256)
	require.Equal(t, isBlake3.IsMatch(c) && isSHA256.IsMatch(c), and.IsMatch(c))

	or := isBlake3.Or(isSHA256)
	require.Equal(t, isBlake3.IsMatch(c) || isSHA256.IsMatch(c), or.IsMatch(c))

	not := isBlake3.Not()
	require.Equal(t, !isBlake3.IsMatch(c), not.IsMatch(c))
}

func TestCodeFilterGtLtViaMultihash(t *testing.T) {
	c := blake3RawCid(t) // multihash code 0x1e

	require.True(t, filter.MultihashCodeFilter(filter.Gt(0x10)).IsMatch(c))
	require.False(t, filter.MultihashCodeFilter(filter.Gt(0x1e)).IsMatch(c))
	require.True(t, filter.MultihashCodeFilter(filter.Lt(0x20)).IsMatch(c))
	require.False(t, filter.MultihashCodeFilter(filter.Lt(0x1e)).IsMatch(c))
}

func TestCodeAndOrNotVacuousCases(t *testing.T) {
	c := blake3RawCid(t)

	require.True(t, filter.MultihashCodeFilter(filter.CodeAnd()).IsMatch(c))
	require.False(t, filter.MultihashCodeFilter(filter.CodeOr()).IsMatch(c))
	require.False(t, filter.MultihashCodeFilter(filter.CodeNot(filter.Eq(uint64(cidx.HashBlake3)))).IsMatch(c))
}
