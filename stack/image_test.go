package stack

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haesemeyer/pixelstack/errs"
)

func TestPlane8(t *testing.T) {
	s, err := New8(5, 4, 2, 2)
	require.NoError(t, err)
	defer s.Dispose()
	require.NoError(t, s.SetAll(10))
	require.NoError(t, s.SetPixel(3, 1, 1, 0, 222))

	img, err := s.Plane(1, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, img.Bounds().Dx())
	assert.Equal(t, 4, img.Bounds().Dy())
	assert.Equal(t, uint8(222), img.GrayAt(3, 1).Y)
	assert.Equal(t, uint8(10), img.GrayAt(0, 0).Y)

	// Other slices are untouched by the marker pixel.
	other, err := s.Plane(0, 0)
	require.NoError(t, err)
	assert.Equal(t, uint8(10), other.GrayAt(3, 1).Y)
}

func TestPlane8IsACopy(t *testing.T) {
	s, err := New8(4, 4, 1, 1)
	require.NoError(t, err)
	defer s.Dispose()
	require.NoError(t, s.SetAll(50))

	img, err := s.Plane(0, 0)
	require.NoError(t, err)
	img.SetGray(0, 0, color.Gray{Y: 99})

	v, err := s.Pixel(0, 0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, uint8(50), v, "mutating the image must not touch the stack")
}

func TestPlane16(t *testing.T) {
	s, err := New16(5, 3, 1, 2)
	require.NoError(t, err)
	defer s.Dispose()
	require.NoError(t, s.SetAll(300))
	require.NoError(t, s.SetPixel(4, 2, 0, 1, 51234))

	img, err := s.Plane(0, 1)
	require.NoError(t, err)
	assert.Equal(t, uint16(51234), img.Gray16At(4, 2).Y)
	assert.Equal(t, uint16(300), img.Gray16At(0, 0).Y)
}

func TestPlaneBounds(t *testing.T) {
	s, err := New8(4, 4, 2, 2)
	require.NoError(t, err)
	defer s.Dispose()

	_, err = s.Plane(2, 0)
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
	_, err = s.Plane(0, -1)
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
}
