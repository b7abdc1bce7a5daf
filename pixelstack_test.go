package pixelstack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew8Wrapper(t *testing.T) {
	s, err := New8(16, 16, 2, 3)
	require.NoError(t, err)
	defer s.Dispose()

	assert.Equal(t, 16, s.Width())
	assert.Equal(t, 2, s.ZPlanes())
	assert.Equal(t, 3, s.TimePoints())
	assert.Equal(t, TBeforeZ, s.Order())
}

func TestWithSliceOrderWrapper(t *testing.T) {
	s, err := New16(8, 8, 2, 2, WithSliceOrder(ZBeforeT))
	require.NoError(t, err)
	defer s.Dispose()

	assert.Equal(t, ZBeforeT, s.Order())
}

func TestCopyWrapper(t *testing.T) {
	src, err := NewFloat(8, 8, 1, 1)
	require.NoError(t, err)
	defer src.Dispose()
	require.NoError(t, src.SetAll(2.5))

	dup, err := NewFloatCopy(src)
	require.NoError(t, err)
	defer dup.Dispose()

	v, err := dup.Pixel(3, 4, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, float32(2.5), v)
}

func TestBorrowedWrapper(t *testing.T) {
	region := make([]byte, 8*8)
	s, err := New8Borrowed(region, 8, 8, 8, 1, 1, TBeforeZ)
	require.NoError(t, err)
	defer s.Dispose()

	assert.False(t, s.OwnsRegion())
}
