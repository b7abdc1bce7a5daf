package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haesemeyer/pixelstack/errs"
)

func TestNew8Geometry(t *testing.T) {
	s, err := New8(41, 13, 3, 5)
	require.NoError(t, err)
	defer s.Dispose()

	assert.Equal(t, 41, s.Width())
	assert.Equal(t, 13, s.Height())
	assert.Equal(t, 3, s.ZPlanes())
	assert.Equal(t, 5, s.TimePoints())
	assert.Equal(t, 1, s.PixelSize())
	assert.Equal(t, 44, s.Stride(), "41 bytes padded to the next multiple of 4")
	assert.Equal(t, 44*13*3*5, s.TotalBytes())
	assert.Equal(t, TBeforeZ, s.Order())
	assert.True(t, s.OwnsRegion())
	assert.False(t, s.Disposed())
	assert.Len(t, s.Region(), s.TotalBytes())
}

func TestNew16StrideAlignment(t *testing.T) {
	tests := []struct {
		width      int
		wantStride int
	}{
		{1, 4},
		{2, 4},
		{3, 8},
		{41, 84},
		{64, 128},
	}
	for _, tt := range tests {
		s, err := New16(tt.width, 2, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, tt.wantStride, s.Stride(), "width %d", tt.width)
		s.Dispose()
	}
}

func TestNewFloatStrideAlwaysAligned(t *testing.T) {
	s, err := NewFloat(7, 3, 2, 2)
	require.NoError(t, err)
	defer s.Dispose()

	assert.Equal(t, 28, s.Stride())
	assert.Equal(t, 0, s.Stride()%4)
}

func TestNewRejectsInvalidDimensions(t *testing.T) {
	tests := []struct {
		name       string
		w, h, z, p int
	}{
		{"zero width", 0, 4, 1, 1},
		{"zero height", 4, 0, 1, 1},
		{"zero z", 4, 4, 0, 1},
		{"zero t", 4, 4, 1, 0},
		{"negative width", -3, 4, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New8(tt.w, tt.h, tt.z, tt.p)
			require.ErrorIs(t, err, errs.ErrInvalidDimension)
		})
	}
}

func TestNewRegionStartsZeroed(t *testing.T) {
	s, err := New16(9, 9, 2, 2)
	require.NoError(t, err)
	defer s.Dispose()

	minVal, maxVal, err := s.FindMinMax()
	require.NoError(t, err)
	assert.Equal(t, uint16(0), minVal)
	assert.Equal(t, uint16(0), maxVal)
}

func TestBorrowedValidation(t *testing.T) {
	region := make([]byte, 48*4)

	t.Run("nil region", func(t *testing.T) {
		_, err := New8Borrowed(nil, 8, 8, 8, 1, 1, TBeforeZ)
		require.ErrorIs(t, err, errs.ErrInvalidArgument)
	})

	t.Run("stride not multiple of pixel size", func(t *testing.T) {
		_, err := New16Borrowed(region, 8, 17, 4, 1, 1, TBeforeZ)
		require.ErrorIs(t, err, errs.ErrInvalidArgument)
	})

	t.Run("stride shorter than row", func(t *testing.T) {
		_, err := New8Borrowed(region, 48, 40, 4, 1, 1, TBeforeZ)
		require.ErrorIs(t, err, errs.ErrInvalidArgument)
	})

	t.Run("region too small", func(t *testing.T) {
		_, err := New8Borrowed(region, 48, 48, 5, 1, 1, TBeforeZ)
		require.ErrorIs(t, err, errs.ErrInvalidArgument)
	})

	t.Run("unknown slice order", func(t *testing.T) {
		_, err := New8Borrowed(region, 48, 48, 4, 1, 1, SliceOrder(99))
		require.ErrorIs(t, err, errs.ErrInvalidArgument)
	})

	t.Run("invalid dimensions", func(t *testing.T) {
		_, err := New8Borrowed(region, 48, 48, 0, 1, 1, TBeforeZ)
		require.ErrorIs(t, err, errs.ErrInvalidDimension)
	})
}

func TestBorrowedDoesNotOwnOrCopy(t *testing.T) {
	region := make([]byte, 12*4)
	s, err := New8Borrowed(region, 10, 12, 4, 1, 1, ZBeforeT)
	require.NoError(t, err)

	assert.False(t, s.OwnsRegion())

	// Mutations through the stack are visible in the caller's region.
	require.NoError(t, s.SetPixel(0, 0, 0, 0, 77))
	assert.Equal(t, byte(77), region[0])

	// Dispose must not touch the caller's memory.
	s.Dispose()
	assert.Equal(t, byte(77), region[0])
}

func TestBorrowedUnalignedStride(t *testing.T) {
	// A 2-byte-aligned stride is legal for 16-bit pixels even though it
	// is not word-aligned.
	region := make([]byte, 10*3)
	s, err := New16Borrowed(region, 4, 10, 3, 1, 1, TBeforeZ)
	require.NoError(t, err)
	defer s.Dispose()

	assert.Equal(t, 10, s.Stride())
	require.NoError(t, s.SetAll(513))
	v, err := s.Pixel(3, 2, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, uint16(513), v)
}

func TestCopyProducesDistinctIdenticalRegion(t *testing.T) {
	src, err := New8(41, 7, 2, 2)
	require.NoError(t, err)
	defer src.Dispose()
	require.NoError(t, src.SetAll(9))

	// Poke padding bytes too; the copy must reproduce them.
	raw := src.Region()
	for y := 0; y < src.Height(); y++ {
		raw[y*src.Stride()+src.Width()] = 0xEE
	}

	dup, err := New8Copy(src)
	require.NoError(t, err)
	defer dup.Dispose()

	assert.Equal(t, src.Stride(), dup.Stride())
	assert.Equal(t, src.Order(), dup.Order())
	assert.True(t, dup.OwnsRegion())
	require.NotSame(t, &src.Region()[0], &dup.Region()[0], "copy must not alias the source region")
	assert.Equal(t, src.Region(), dup.Region())
}

func TestCopyFromDisposedFails(t *testing.T) {
	src, err := New16(8, 8, 1, 1)
	require.NoError(t, err)
	src.Dispose()

	_, err = New16Copy(src)
	require.ErrorIs(t, err, errs.ErrInvalidOperation)
}

func TestDisposeIdempotent(t *testing.T) {
	s, err := New8(16, 16, 1, 1)
	require.NoError(t, err)

	s.Dispose()
	require.True(t, s.Disposed())
	assert.Equal(t, 0, s.TotalBytes())
	assert.Nil(t, s.Region())

	// Further disposals are no-ops.
	s.Dispose()
	s.Dispose()
	assert.True(t, s.Disposed())
}

func TestDisposedRejectsEveryOperation(t *testing.T) {
	s, err := New8(8, 8, 2, 2)
	require.NoError(t, err)
	other, err := New8(8, 8, 2, 2)
	require.NoError(t, err)
	defer other.Dispose()

	s.Dispose()

	ops := map[string]func() error{
		"SetAll":      func() error { return s.SetAll(1) },
		"AddConstant": func() error { return s.AddConstant(1) },
		"SubConstant": func() error { return s.SubConstant(1) },
		"MulConstant": func() error { return s.MulConstant(2) },
		"DivConstant": func() error { return s.DivConstant(2) },
		"Add":         func() error { return s.Add(other) },
		"Subtract":    func() error { return s.Subtract(other) },
		"Multiply":    func() error { return s.Multiply(other) },
		"Divide":      func() error { return s.Divide(other) },
		"SetPixel":    func() error { return s.SetPixel(0, 0, 0, 0, 1) },
		"Restore":     func() error { return s.Restore(&Snapshot{}) },
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			require.ErrorIs(t, op(), errs.ErrStackDisposed)
		})
	}

	_, err = s.Pixel(0, 0, 0, 0)
	require.ErrorIs(t, err, errs.ErrStackDisposed)
	_, _, err = s.FindMinMax()
	require.ErrorIs(t, err, errs.ErrStackDisposed)
	_, err = s.SliceOffset(0, 0)
	require.ErrorIs(t, err, errs.ErrStackDisposed)
	_, err = s.PixelOffset(0, 0, 0, 0)
	require.ErrorIs(t, err, errs.ErrStackDisposed)
	_, err = s.Fingerprint()
	require.ErrorIs(t, err, errs.ErrStackDisposed)
	_, err = s.Snapshot(SnapshotNone)
	require.ErrorIs(t, err, errs.ErrStackDisposed)
	_, err = s.Plane(0, 0)
	require.ErrorIs(t, err, errs.ErrStackDisposed)
}

func TestCopyRegionRejectsAliasing(t *testing.T) {
	buf := make([]byte, 64)

	require.ErrorIs(t, copyRegion(buf[:32], buf[16:48]), errs.ErrInvalidOperation)
	require.ErrorIs(t, copyRegion(buf[:32], buf[:32]), errs.ErrInvalidOperation)
	require.ErrorIs(t, copyRegion(nil, buf[:0]), errs.ErrInvalidOperation)
	require.ErrorIs(t, copyRegion(buf[:16], buf[32:50]), errs.ErrInvalidOperation)

	// Disjoint halves are fine.
	require.NoError(t, copyRegion(buf[:32], buf[32:]))
}

func TestWithSliceOrder(t *testing.T) {
	s, err := New8(4, 4, 2, 3, WithSliceOrder(ZBeforeT))
	require.NoError(t, err)
	defer s.Dispose()
	assert.Equal(t, ZBeforeT, s.Order())

	_, err = New8(4, 4, 2, 3, WithSliceOrder(SliceOrder(7)))
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestFingerprintIgnoresPadding(t *testing.T) {
	a, err := New8(41, 5, 1, 1)
	require.NoError(t, err)
	defer a.Dispose()
	require.NoError(t, a.SetAll(3))

	before, err := a.Fingerprint()
	require.NoError(t, err)

	// Scribbling on padding must not change the fingerprint.
	raw := a.Region()
	for y := 0; y < a.Height(); y++ {
		raw[y*a.Stride()+a.Width()] = 0xFF
	}
	after, err := a.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, before, after)

	// Changing one valid pixel must.
	require.NoError(t, a.SetPixel(0, 0, 0, 0, 4))
	changed, err := a.Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, before, changed)
}

func TestFingerprintStrideIndependent(t *testing.T) {
	owned, err := New8(41, 4, 1, 1)
	require.NoError(t, err)
	defer owned.Dispose()
	require.NoError(t, owned.SetAll(42))

	borrowed, err := New8Borrowed(make([]byte, 48*4), 41, 48, 4, 1, 1, TBeforeZ)
	require.NoError(t, err)
	defer borrowed.Dispose()
	require.NoError(t, borrowed.SetAll(42))

	fa, err := owned.Fingerprint()
	require.NoError(t, err)
	fb, err := borrowed.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, fa, fb, "equal content must fingerprint equally regardless of stride")
}

func TestSliceOrderString(t *testing.T) {
	assert.Equal(t, "ZBeforeT", ZBeforeT.String())
	assert.Equal(t, "TBeforeZ", TBeforeZ.String())
	assert.Equal(t, "Unknown", SliceOrder(0).String())
}
