package stack

import (
	"encoding/binary"
	"image"

	"github.com/haesemeyer/pixelstack/endian"
)

// Plane views hand a single (z, t) slice to display collaborators as a
// stdlib image. The returned image holds a copy; mutating it does not
// touch the stack.

// Plane returns slice (z, t) as a grayscale image.
func (s *Stack8) Plane(z, t int) (*image.Gray, error) {
	base, err := s.SliceOffset(z, t)
	if err != nil {
		return nil, err
	}

	img := image.NewGray(image.Rect(0, 0, s.width, s.height))
	for y := 0; y < s.height; y++ {
		row := s.data[base+y*s.stride:]
		copy(img.Pix[y*img.Stride:], row[:s.width])
	}

	return img, nil
}

// Plane returns slice (z, t) as a 16-bit grayscale image.
func (s *Stack16) Plane(z, t int) (*image.Gray16, error) {
	base, err := s.SliceOffset(z, t)
	if err != nil {
		return nil, err
	}

	eng := endian.Native()
	img := image.NewGray16(image.Rect(0, 0, s.width, s.height))
	for y := 0; y < s.height; y++ {
		row := base + y*s.stride
		out := img.Pix[y*img.Stride:]
		for x := 0; x < s.width; x++ {
			off := row + x*pixelSize16
			// image.Gray16 stores big-endian pixels regardless of host order.
			binary.BigEndian.PutUint16(out[x*2:], eng.Uint16(s.data[off:off+pixelSize16]))
		}
	}

	return img, nil
}
