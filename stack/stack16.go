package stack

import (
	"runtime"

	"github.com/haesemeyer/pixelstack/endian"
	"github.com/haesemeyer/pixelstack/internal/satmath"
)

// Stack16 is a 4D pixel stack with 16-bit unsigned pixels. Its word-packed
// operators process two pixel lanes per machine word.
type Stack16 struct {
	stackBase
}

const pixelSize16 = 2

// New16 allocates an owning 16-bit stack of the given extents.
func New16(width, height, zPlanes, timePoints int, opts ...Option) (*Stack16, error) {
	base, err := newBase(width, height, zPlanes, timePoints, pixelSize16, opts...)
	if err != nil {
		return nil, err
	}

	s := &Stack16{stackBase: base}
	runtime.SetFinalizer(s, (*Stack16).Dispose)

	return s, nil
}

// New16Copy allocates an owning byte-for-byte duplicate of src, padding
// included. Fails with errs.ErrInvalidOperation if src is disposed.
func New16Copy(src *Stack16) (*Stack16, error) {
	base, err := newCopyBase(&src.stackBase)
	if err != nil {
		return nil, err
	}

	s := &Stack16{stackBase: base}
	runtime.SetFinalizer(s, (*Stack16).Dispose)

	return s, nil
}

// New16Borrowed wraps a caller-owned region without copying or taking
// ownership. The stride must be a multiple of 2 but need not be 4-byte
// aligned; stride-mismatched operands fall back to the per-pixel path.
func New16Borrowed(region []byte, width, stride, height, zPlanes, timePoints int,
	order SliceOrder,
) (*Stack16, error) {
	base, err := newBorrowedBase(region, width, stride, height, zPlanes, timePoints, order, pixelSize16)
	if err != nil {
		return nil, err
	}

	return &Stack16{stackBase: base}, nil
}

// Pixel reads the pixel at (x, y, z, t).
func (s *Stack16) Pixel(x, y, z, t int) (uint16, error) {
	off, err := s.PixelOffset(x, y, z, t)
	if err != nil {
		return 0, err
	}

	return endian.Native().Uint16(s.data[off : off+pixelSize16]), nil
}

// SetPixel writes the pixel at (x, y, z, t).
func (s *Stack16) SetPixel(x, y, z, t int, v uint16) error {
	off, err := s.PixelOffset(x, y, z, t)
	if err != nil {
		return err
	}
	endian.Native().PutUint16(s.data[off:off+pixelSize16], v)

	return nil
}

// SetAll writes v to every position in the region, padding included.
func (s *Stack16) SetAll(v uint16) error {
	if err := s.ensureAlive(); err != nil {
		return err
	}

	data := s.data
	eng := endian.Native()
	word := satmath.Replicate16(v)
	n := len(data) / satmath.WordBytes * satmath.WordBytes
	for i := 0; i < n; i += satmath.WordBytes {
		eng.PutUint32(data[i:i+satmath.WordBytes], word)
	}
	for i := n; i < len(data); i += pixelSize16 {
		eng.PutUint16(data[i:i+pixelSize16], v)
	}

	return nil
}

// mapWords applies fn to every element of the region, two lanes per word
// with a scalar tail for the leftover element.
func (s *Stack16) mapWords(fn func(uint16) uint16) {
	data := s.data
	eng := endian.Native()
	n := len(data) / satmath.WordBytes * satmath.WordBytes
	for i := 0; i < n; i += satmath.WordBytes {
		w := eng.Uint32(data[i : i+satmath.WordBytes])
		eng.PutUint32(data[i:i+satmath.WordBytes], satmath.MapLanes16(w, fn))
	}
	for i := n; i < len(data); i += pixelSize16 {
		eng.PutUint16(data[i:i+pixelSize16], fn(eng.Uint16(data[i:i+pixelSize16])))
	}
}

// zipWords combines the regions of two equal-stride stacks word by word.
// Padding positions are processed too; their content is
// implementation-defined.
func (s *Stack16) zipWords(o *Stack16, fn func(x, y uint16) uint16) {
	a, b := s.data, o.data
	eng := endian.Native()
	n := len(a) / satmath.WordBytes * satmath.WordBytes
	for i := 0; i < n; i += satmath.WordBytes {
		w := satmath.ZipLanes16(eng.Uint32(a[i:i+satmath.WordBytes]), eng.Uint32(b[i:i+satmath.WordBytes]), fn)
		eng.PutUint32(a[i:i+satmath.WordBytes], w)
	}
	for i := n; i < len(a); i += pixelSize16 {
		v := fn(eng.Uint16(a[i:i+pixelSize16]), eng.Uint16(b[i:i+pixelSize16]))
		eng.PutUint16(a[i:i+pixelSize16], v)
	}
}

// zipPixels combines two stride-mismatched stacks pixel by pixel through
// the addressing engine.
func (s *Stack16) zipPixels(o *Stack16, fn func(x, y uint16) uint16) {
	eng := endian.Native()
	s.forEachRowPair(&o.stackBase, func(selfRow, otherRow int) {
		for x := 0; x < s.width; x++ {
			so := selfRow + x*pixelSize16
			oo := otherRow + x*pixelSize16
			v := fn(eng.Uint16(s.data[so:so+pixelSize16]), eng.Uint16(o.data[oo:oo+pixelSize16]))
			eng.PutUint16(s.data[so:so+pixelSize16], v)
		}
	})
}

func (s *Stack16) pairwise(o *Stack16, fn func(x, y uint16) uint16) error {
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
		s.zipWords(o, fn)
	} else {
		s.zipPixels(o, fn)
	}

	return nil
}

// AddConstant adds v to every element, clamping at 65535.
func (s *Stack16) AddConstant(v uint16) error {
	if err := s.ensureAlive(); err != nil {
		return err
	}
	s.mapWords(func(p uint16) uint16 { return satmath.AddSat(p, v) })

	return nil
}

// SubConstant subtracts v from every element, clamping at 0.
func (s *Stack16) SubConstant(v uint16) error {
	if err := s.ensureAlive(); err != nil {
		return err
	}
	s.mapWords(func(p uint16) uint16 { return satmath.SubSat(p, v) })

	return nil
}

// MulConstant multiplies every element by v, clamping at 65535.
func (s *Stack16) MulConstant(v uint16) error {
	if err := s.ensureAlive(); err != nil {
		return err
	}
	s.mapWords(func(p uint16) uint16 { return satmath.MulSat(p, v) })

	return nil
}

// DivConstant divides every element by v. A zero divisor is an unchecked
// precondition violation and faults; callers must validate divisors.
func (s *Stack16) DivConstant(v uint16) error {
	if err := s.ensureAlive(); err != nil {
		return err
	}
	s.mapWords(func(p uint16) uint16 { return p / v })

	return nil
}

// Add adds o element-wise into s, clamping at 65535. Fails with
// errs.ErrIncompatibleStack if o is disposed or has different geometry.
func (s *Stack16) Add(o *Stack16) error {
	return s.pairwise(o, satmath.AddSat[uint16])
}

// Subtract subtracts o element-wise from s, clamping at 0.
func (s *Stack16) Subtract(o *Stack16) error {
	return s.pairwise(o, satmath.SubSat[uint16])
}

// Multiply multiplies s element-wise by o, clamping at 65535.
func (s *Stack16) Multiply(o *Stack16) error {
	return s.pairwise(o, satmath.MulSat[uint16])
}

// Divide divides s element-wise by o. A zero element in o is an unchecked
// precondition violation and faults. Division always runs row-wise over
// the valid region: padding positions are zero in freshly allocated
// stacks and must never be used as divisors.
func (s *Stack16) Divide(o *Stack16) error {
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
	s.zipPixels(o, func(x, y uint16) uint16 { return x / y })

	return nil
}

// FindMinMax scans every valid pixel and returns the extremes. Stride
// padding is excluded from the reduction.
func (s *Stack16) FindMinMax() (minVal, maxVal uint16, err error) {
	if err := s.ensureAlive(); err != nil {
		return 0, 0, err
	}

	eng := endian.Native()
	minVal = satmath.Max[uint16]()
	s.forEachRow(func(row int) {
		for x := 0; x < s.width; x++ {
			off := row + x*pixelSize16
			p := eng.Uint16(s.data[off : off+pixelSize16])
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
