package stack

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertAllF(t *testing.T, s *StackFloat, want float32) {
	t.Helper()
	for z := 0; z < s.ZPlanes(); z++ {
		for tp := 0; tp < s.TimePoints(); tp++ {
			for y := 0; y < s.Height(); y++ {
				for x := 0; x < s.Width(); x++ {
					v, err := s.Pixel(x, y, z, tp)
					require.NoError(t, err)
					if v != want {
						t.Fatalf("pixel (%d,%d,%d,%d) = %g, want %g", x, y, z, tp, v, want)
					}
				}
			}
		}
	}
}

func TestSetAllFloat(t *testing.T) {
	s, err := NewFloat(7, 5, 2, 2)
	require.NoError(t, err)
	defer s.Dispose()

	require.NoError(t, s.SetAll(-3.25))
	assertAllF(t, s, -3.25)
}

func TestConstantOpsFloatNoSaturation(t *testing.T) {
	s, err := NewFloat(7, 3, 1, 1)
	require.NoError(t, err)
	defer s.Dispose()

	require.NoError(t, s.SetAll(1.5))
	require.NoError(t, s.AddConstant(2.25))
	assertAllF(t, s, 3.75)

	require.NoError(t, s.SubConstant(10))
	assertAllF(t, s, -6.25)

	require.NoError(t, s.MulConstant(-2))
	assertAllF(t, s, 12.5)

	require.NoError(t, s.DivConstant(4))
	assertAllF(t, s, 3.125)
}

func TestFloatOverflowToInfinity(t *testing.T) {
	s, err := NewFloat(4, 4, 1, 1)
	require.NoError(t, err)
	defer s.Dispose()

	require.NoError(t, s.SetAll(math.MaxFloat32))
	require.NoError(t, s.MulConstant(2))

	v, err := s.Pixel(0, 0, 0, 0)
	require.NoError(t, err)
	assert.True(t, math.IsInf(float64(v), 1), "float arithmetic must not clamp")
}

func TestFloatDivisionByZeroPropagates(t *testing.T) {
	s, err := NewFloat(4, 4, 1, 1)
	require.NoError(t, err)
	defer s.Dispose()

	require.NoError(t, s.SetAll(1))
	require.NoError(t, s.DivConstant(0))
	v, err := s.Pixel(0, 0, 0, 0)
	require.NoError(t, err)
	assert.True(t, math.IsInf(float64(v), 1))
}

func TestPairwiseFloatBothPaths(t *testing.T) {
	run := func(t *testing.T, other *StackFloat) {
		t.Helper()
		a, err := NewFloat(7, 4, 1, 1)
		require.NoError(t, err)
		defer a.Dispose()

		require.NoError(t, a.SetAll(10))
		require.NoError(t, other.SetAll(4))

		require.NoError(t, a.Add(other))
		assertAllF(t, a, 14)

		require.NoError(t, a.Subtract(other))
		assertAllF(t, a, 10)

		require.NoError(t, a.Multiply(other))
		assertAllF(t, a, 40)

		require.NoError(t, a.Divide(other))
		assertAllF(t, a, 10)
	}

	t.Run("equal stride", func(t *testing.T) {
		other, err := NewFloat(7, 4, 1, 1)
		require.NoError(t, err)
		defer other.Dispose()
		run(t, other)
	})

	t.Run("mismatched stride", func(t *testing.T) {
		// Wider stride, still 4-byte aligned as required by the pixel size.
		other, err := NewFloatBorrowed(make([]byte, 36*4), 7, 36, 4, 1, 1, TBeforeZ)
		require.NoError(t, err)
		defer other.Dispose()
		run(t, other)
	})
}

func TestFindMinMaxFloat(t *testing.T) {
	s, err := NewFloat(9, 4, 2, 1)
	require.NoError(t, err)
	defer s.Dispose()

	require.NoError(t, s.SetAll(0.5))
	require.NoError(t, s.SetPixel(2, 2, 1, 0, -17.5))
	require.NoError(t, s.SetPixel(8, 0, 0, 0, 42.25))

	minVal, maxVal, err := s.FindMinMax()
	require.NoError(t, err)
	assert.Equal(t, float32(-17.5), minVal)
	assert.Equal(t, float32(42.25), maxVal)
}

func TestFindMinMaxFloatSkipsNaN(t *testing.T) {
	s, err := NewFloat(4, 2, 1, 1)
	require.NoError(t, err)
	defer s.Dispose()

	require.NoError(t, s.SetAll(2))
	require.NoError(t, s.SetPixel(1, 1, 0, 0, float32(math.NaN())))

	minVal, maxVal, err := s.FindMinMax()
	require.NoError(t, err)
	assert.Equal(t, float32(2), minVal)
	assert.Equal(t, float32(2), maxVal)
}
