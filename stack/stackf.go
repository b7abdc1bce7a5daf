package stack

import (
	"math"
	"runtime"

	"github.com/haesemeyer/pixelstack/endian"
)

// StackFloat is a 4D pixel stack with 32-bit float pixels. The element
// size already equals the packed word size (k=1), so operators apply
// per element with ordinary IEEE semantics: no saturation, NaN and
// infinities propagate unclamped.
type StackFloat struct {
	stackBase
}

const pixelSizeFloat = 4

// NewFloat allocates an owning float stack of the given extents.
func NewFloat(width, height, zPlanes, timePoints int, opts ...Option) (*StackFloat, error) {
	base, err := newBase(width, height, zPlanes, timePoints, pixelSizeFloat, opts...)
	if err != nil {
		return nil, err
	}

	s := &StackFloat{stackBase: base}
	runtime.SetFinalizer(s, (*StackFloat).Dispose)

	return s, nil
}

// NewFloatCopy allocates an owning byte-for-byte duplicate of src,
// padding included. Fails with errs.ErrInvalidOperation if src is
// disposed.
func NewFloatCopy(src *StackFloat) (*StackFloat, error) {
	base, err := newCopyBase(&src.stackBase)
	if err != nil {
		return nil, err
	}

	s := &StackFloat{stackBase: base}
	runtime.SetFinalizer(s, (*StackFloat).Dispose)

	return s, nil
}

// NewFloatBorrowed wraps a caller-owned region without copying or taking
// ownership. The stride is always word-aligned because the pixel size is 4.
func NewFloatBorrowed(region []byte, width, stride, height, zPlanes, timePoints int,
	order SliceOrder,
) (*StackFloat, error) {
	base, err := newBorrowedBase(region, width, stride, height, zPlanes, timePoints, order, pixelSizeFloat)
	if err != nil {
		return nil, err
	}

	return &StackFloat{stackBase: base}, nil
}

// Pixel reads the pixel at (x, y, z, t).
func (s *StackFloat) Pixel(x, y, z, t int) (float32, error) {
	off, err := s.PixelOffset(x, y, z, t)
	if err != nil {
		return 0, err
	}

	return math.Float32frombits(endian.Native().Uint32(s.data[off : off+pixelSizeFloat])), nil
}

// SetPixel writes the pixel at (x, y, z, t).
func (s *StackFloat) SetPixel(x, y, z, t int, v float32) error {
	off, err := s.PixelOffset(x, y, z, t)
	if err != nil {
		return err
	}
	endian.Native().PutUint32(s.data[off:off+pixelSizeFloat], math.Float32bits(v))

	return nil
}

// SetAll writes v to every position in the region, padding included.
func (s *StackFloat) SetAll(v float32) error {
	if err := s.ensureAlive(); err != nil {
		return err
	}

	data := s.data
	eng := endian.Native()
	bits := math.Float32bits(v)
	for i := 0; i < len(data); i += pixelSizeFloat {
		eng.PutUint32(data[i:i+pixelSizeFloat], bits)
	}

	return nil
}

// mapElems applies fn to every element of the region.
func (s *StackFloat) mapElems(fn func(float32) float32) {
	data := s.data
	eng := endian.Native()
	for i := 0; i < len(data); i += pixelSizeFloat {
		v := math.Float32frombits(eng.Uint32(data[i : i+pixelSizeFloat]))
		eng.PutUint32(data[i:i+pixelSizeFloat], math.Float32bits(fn(v)))
	}
}

// zipElems combines the regions of two equal-stride stacks element by
// element over the full linear range, padding included.
func (s *StackFloat) zipElems(o *StackFloat, fn func(x, y float32) float32) {
	a, b := s.data, o.data
	eng := endian.Native()
	for i := 0; i < len(a); i += pixelSizeFloat {
		x := math.Float32frombits(eng.Uint32(a[i : i+pixelSizeFloat]))
		y := math.Float32frombits(eng.Uint32(b[i : i+pixelSizeFloat]))
		eng.PutUint32(a[i:i+pixelSizeFloat], math.Float32bits(fn(x, y)))
	}
}

// zipPixels combines two stride-mismatched stacks pixel by pixel through
// the addressing engine.
func (s *StackFloat) zipPixels(o *StackFloat, fn func(x, y float32) float32) {
	eng := endian.Native()
	s.forEachRowPair(&o.stackBase, func(selfRow, otherRow int) {
		for x := 0; x < s.width; x++ {
			so := selfRow + x*pixelSizeFloat
			oo := otherRow + x*pixelSizeFloat
			xv := math.Float32frombits(eng.Uint32(s.data[so : so+pixelSizeFloat]))
			yv := math.Float32frombits(eng.Uint32(o.data[oo : oo+pixelSizeFloat]))
			eng.PutUint32(s.data[so:so+pixelSizeFloat], math.Float32bits(fn(xv, yv)))
		}
	})
}

func (s *StackFloat) pairwise(o *StackFloat, fn func(x, y float32) float32) error {
	if err := s.ensureAlive(); err != nil {
		return err
	}
	var ob *stackBase
	if o != nil {
		ob = &o.stackBase
	}
	if err := s.checkOperand(ob); err != nil {
		return err
	}

	if s.stride == o.stride {
		s.zipElems(o, fn)
	} else {
		s.zipPixels(o, fn)
	}

	return nil
}

// AddConstant adds v to every element.
func (s *StackFloat) AddConstant(v float32) error {
	if err := s.ensureAlive(); err != nil {
		return err
	}
	s.mapElems(func(p float32) float32 { return p + v })

	return nil
}

// SubConstant subtracts v from every element.
func (s *StackFloat) SubConstant(v float32) error {
	if err := s.ensureAlive(); err != nil {
		return err
	}
	s.mapElems(func(p float32) float32 { return p - v })

	return nil
}

// MulConstant multiplies every element by v.
func (s *StackFloat) MulConstant(v float32) error {
	if err := s.ensureAlive(); err != nil {
		return err
	}
	s.mapElems(func(p float32) float32 { return p * v })

	return nil
}

// DivConstant divides every element by v. Division by zero follows IEEE
// semantics and yields infinities or NaN.
func (s *StackFloat) DivConstant(v float32) error {
	if err := s.ensureAlive(); err != nil {
		return err
	}
	s.mapElems(func(p float32) float32 { return p / v })

	return nil
}

// Add adds o element-wise into s. Fails with errs.ErrIncompatibleStack if
// o is disposed or has different geometry.
func (s *StackFloat) Add(o *StackFloat) error {
	return s.pairwise(o, func(x, y float32) float32 { return x + y })
}

// Subtract subtracts o element-wise from s.
func (s *StackFloat) Subtract(o *StackFloat) error {
	return s.pairwise(o, func(x, y float32) float32 { return x - y })
}

// Multiply multiplies s element-wise by o.
func (s *StackFloat) Multiply(o *StackFloat) error {
	return s.pairwise(o, func(x, y float32) float32 { return x * y })
}

// Divide divides s element-wise by o. Zero divisors follow IEEE semantics.
func (s *StackFloat) Divide(o *StackFloat) error {
	return s.pairwise(o, func(x, y float32) float32 { return x / y })
}

// FindMinMax scans every valid pixel and returns the extremes. Stride
// padding is excluded; NaN elements never compare as extremes.
func (s *StackFloat) FindMinMax() (minVal, maxVal float32, err error) {
	if err := s.ensureAlive(); err != nil {
		return 0, 0, err
	}

	eng := endian.Native()
	minVal = math.MaxFloat32
	maxVal = -math.MaxFloat32
	s.forEachRow(func(row int) {
		for x := 0; x < s.width; x++ {
			off := row + x*pixelSizeFloat
			p := math.Float32frombits(eng.Uint32(s.data[off : off+pixelSizeFloat]))
			if p < minVal {
				minVal = p
			}
			if p > maxVal {
				maxVal = p
			}
		}
	})

	return minVal, maxVal, nil
}
